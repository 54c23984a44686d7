package tui

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/dataset"
	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/pkg/logger"
)

// YearLoader loads the dataset of one year.
type YearLoader func(ctx context.Context, year string) (*dataset.Dataset, error)

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithSize sets the initial terminal size, before the first resize message.
func WithSize(width, height int) Option {
	return func(m *Model) {
		if width > 0 && height > 0 {
			m.width, m.height = width, height
		}
	}
}

// WithLegendHeight sets how many rows the genre legend takes.
func WithLegendHeight(rows int) Option {
	return func(m *Model) {
		if rows >= 0 {
			m.legendHeight = rows
		}
	}
}

// WithAxisColor sets the colour of the time axis and its dates.
func WithAxisColor(c colorful.Color) Option {
	return func(m *Model) {
		m.axisColor = c
	}
}

// WithYears enables year navigation over years, loading each with load.
func WithYears(years []string, load YearLoader) Option {
	return func(m *Model) {
		if len(years) > 0 && load != nil {
			m.years = years
			m.loadYear = load
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// WithStatusBoard publishes the session status after every update.
func WithStatusBoard(b *service.StatusBoard) Option {
	return func(m *Model) {
		m.board = b
	}
}

// WithTopArtists sets how many artists the top artists pane lists.
func WithTopArtists(k int) Option {
	return func(m *Model) {
		if k > 0 {
			m.topK = k
		}
	}
}

// WithSessionOptions passes options to every controller the model creates.
func WithSessionOptions(opts ...service.Option) Option {
	return func(m *Model) {
		m.sessionOpts = append(m.sessionOpts, opts...)
	}
}

// WithLogger sets the logger instance.
func WithLogger(log logger.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.logger = log
		}
	}
}
