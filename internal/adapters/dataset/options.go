package dataset

import (
	"time"

	"github.com/okian/timeline/internal/domain/palette"
	"github.com/okian/timeline/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithCache sets the session cache. Without one every Load reads the files.
func WithCache(c *Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithLocation sets the time zone scrobble dates are recorded in.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		if loc != nil {
			l.location = loc
		}
	}
}

// WithLogger sets the logger instance.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithPaletteOptions sets the palette configuration used to colour events.
// The maximum album playcount is always taken from the dataset.
func WithPaletteOptions(opts ...palette.Option) Option {
	return func(l *Loader) {
		l.paletteOpts = append(l.paletteOpts, opts...)
	}
}
