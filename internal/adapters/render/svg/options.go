package svg

import "github.com/lucasb-eyer/go-colorful"

// Option applies a configuration option to the Canvas.
type Option func(*Canvas)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(c *Canvas) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithPadding sets the plot padding; the time axis sits this far above the bottom edge.
func WithPadding(padding int) Option {
	return func(c *Canvas) {
		if padding >= 0 {
			c.padding = padding
		}
	}
}

// WithPointSize sets the side of a drawn point.
func WithPointSize(size int) Option {
	return func(c *Canvas) {
		if size > 0 {
			c.pointSize = size
		}
	}
}

// WithTimeAxis sets the time axis stroke.
func WithTimeAxis(width int, color colorful.Color) Option {
	return func(c *Canvas) {
		if width >= 0 {
			c.axisWidth = width
		}
		c.axisColor = color
	}
}

// WithBackground sets the background colour.
func WithBackground(color colorful.Color) Option {
	return func(c *Canvas) {
		c.background = color
	}
}

// WithFontSize sets the label font size. Label widths are estimated from it.
func WithFontSize(size int) Option {
	return func(c *Canvas) {
		if size > 0 {
			c.fontSize = size
		}
	}
}
