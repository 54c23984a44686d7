package label

// Option applies a configuration option to the Placer.
type Option func(*Placer)

// WithMargin sets the minimum gap kept between placed boxes.
func WithMargin(margin int) Option {
	return func(p *Placer) {
		if margin >= 0 {
			p.margin = margin
		}
	}
}

// WithPadding sets the horizontal padding of the plot area edges.
func WithPadding(padding int) Option {
	return func(p *Placer) {
		if padding >= 0 {
			p.padding = padding
		}
	}
}

// WithAreaWidth sets the plot area width labels are clamped to.
func WithAreaWidth(width int) Option {
	return func(p *Placer) {
		if width > 0 {
			p.areaWidth = width
		}
	}
}

// WithOffset sets the gap between the anchor and the label bottom.
func WithOffset(offset int) Option {
	return func(p *Placer) {
		if offset >= 0 {
			p.offset = offset
		}
	}
}
