package scale

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPadding sets the plot padding in pixels.
func WithPadding(padding int) Option {
	return func(e *Engine) {
		if padding >= 0 {
			e.padding = padding
		}
	}
}

// WithPointSize sets the drawn point size in pixels.
func WithPointSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.pointSize = size
		}
	}
}

// WithPointMaxMargin sets the largest vertical gap tried between rows.
func WithPointMaxMargin(margin int) Option {
	return func(e *Engine) {
		if margin >= 0 {
			e.pointMaxMargin = margin
		}
	}
}

// WithTimeAxisWidth sets the stroke width of the time axis.
func WithTimeAxisWidth(width int) Option {
	return func(e *Engine) {
		if width >= 0 {
			e.timeAxisWidth = width
		}
	}
}

// WithMaxPlaycounts sets the dataset maxima that size the y and colour scales.
func WithMaxPlaycounts(artist, album int) Option {
	return func(e *Engine) {
		if artist > 0 {
			e.maxArtistPlaycount = artist
		}
		if album > 0 {
			e.maxAlbumPlaycount = album
		}
	}
}
