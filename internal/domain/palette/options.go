package palette

// Option applies a configuration option to the Palette.
type Option func(*options)

type options struct {
	groups  map[string][2]string
	unknown [2]string
	factors map[Variant]Factors
}

func defaultOptions() *options {
	return &options{
		groups:  make(map[string][2]string),
		unknown: [2]string{"#333333", "#cccccc"},
		factors: map[Variant]Factors{
			VariantOther:  {Saturation: 0.5, Lightness: 0.8},
			VariantGenre:  {Saturation: 1, Lightness: 1},
			VariantArtist: {Saturation: 1.2, Lightness: 1.2},
			VariantLabel:  {Saturation: 1.4, Lightness: 1.3},
		},
	}
}

// WithGroup sets the colour range of a genre group as two hex colours.
func WithGroup(name string, from, to string) Option {
	return func(o *options) {
		o.groups[name] = [2]string{from, to}
	}
}

// WithGroups sets the colour ranges of several genre groups.
func WithGroups(groups map[string][2]string) Option {
	return func(o *options) {
		for name, hex := range groups {
			o.groups[name] = hex
		}
	}
}

// WithUnknownRange sets the fallback range for unmapped groups.
func WithUnknownRange(from, to string) Option {
	return func(o *options) {
		if from != "" && to != "" {
			o.unknown = [2]string{from, to}
		}
	}
}

// WithFactors overrides the HSL factors of one variant.
func WithFactors(v Variant, f Factors) Option {
	return func(o *options) {
		if f.Saturation > 0 && f.Lightness > 0 {
			o.factors[v] = f
		}
	}
}
