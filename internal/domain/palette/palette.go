// Package palette computes point and label colours from genre groups and a
// position on the sequential scale, 0 for the least played album and 1 for
// the most played.
package palette

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/domain/model"
)

// Variant selects one of the derived colours of a scrobble.
type Variant string

// Colour variants.
const (
	VariantOther  Variant = "other"
	VariantGenre  Variant = "genre"
	VariantArtist Variant = "artist"
	VariantLabel  Variant = "artistLabel"
)

// Factors multiply the HSL saturation and lightness of a base colour.
type Factors struct {
	Saturation float64
	Lightness  float64
}

// Range is a sequential colour range, from the lowest to the highest playcount.
type Range struct {
	From colorful.Color
	To   colorful.Color
}

// At blends the range at t in [0, 1].
func (r Range) At(t float64) colorful.Color {
	return r.From.BlendRgb(r.To, t).Clamped()
}

// Palette is immutable once built.
type Palette struct {
	groups  map[string]Range
	unknown Range
	factors map[Variant]Factors
}

// New parses the configured hex colours and returns a Palette.
func New(opts ...Option) (*Palette, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	p := &Palette{
		groups:  make(map[string]Range, len(o.groups)),
		factors: o.factors,
	}

	var err error
	if p.unknown, err = parseRange(o.unknown); err != nil {
		return nil, fmt.Errorf("unknown genre colors: %w", err)
	}
	for name, hex := range o.groups {
		r, err := parseRange(hex)
		if err != nil {
			return nil, fmt.Errorf("genre group %q: %w", name, err)
		}
		p.groups[name] = r
	}

	return p, nil
}

func parseRange(hex [2]string) (Range, error) {
	from, err := colorful.Hex(hex[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidColor, hex[0])
	}
	to, err := colorful.Hex(hex[1])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidColor, hex[1])
	}
	return Range{From: from, To: to}, nil
}

// HasGroup reports whether group has its own colour range.
func (p *Palette) HasGroup(group string) bool {
	_, ok := p.groups[group]
	return ok
}

// Groups returns the configured group names sorted alphabetically.
func (p *Palette) Groups() []string {
	names := make([]string, 0, len(p.groups))
	for name := range p.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rangeFor returns the range of group, falling back to the unknown range.
func (p *Palette) rangeFor(group string) (Range, bool) {
	if r, ok := p.groups[group]; ok {
		return r, true
	}
	return p.unknown, false
}

// Base returns the sequential colour of group at position in [0, 1].
// The bool is false when the unknown range was used.
func (p *Palette) Base(group string, position float64) (colorful.Color, bool) {
	r, ok := p.rangeFor(group)
	return r.At(math.Max(0, math.Min(position, 1))), ok
}

// Apply derives a variant of base.
func (p *Palette) Apply(base colorful.Color, v Variant) colorful.Color {
	f, ok := p.factors[v]
	if !ok {
		return base
	}
	h, s, l := base.Hsl()
	s = math.Min(s*f.Saturation, 1)
	l = math.Min(l*f.Lightness, 1)
	return colorful.Hsl(h, s, l).Clamped()
}

// Colors computes every variant for one scrobble.
func (p *Palette) Colors(group string, position float64) (model.Colors, bool) {
	base, ok := p.Base(group, position)
	return model.Colors{
		Base:   p.Apply(base, VariantOther),
		Genre:  p.Apply(base, VariantGenre),
		Artist: p.Apply(base, VariantArtist),
		Label:  p.Apply(base, VariantLabel),
	}, ok
}

// GroupSwatch returns the legend colour of a group: the start of its range
// with the given variant applied.
func (p *Palette) GroupSwatch(group string, v Variant) colorful.Color {
	r, _ := p.rangeFor(group)
	return p.Apply(r.From, v)
}

// UnknownGroups returns the distinct genre groups of events that have no
// range of their own, in first-seen order. Events without a group are not
// reported.
func (p *Palette) UnknownGroups(events []*model.Event) []string {
	var unknown []string
	seen := make(map[string]struct{})

	for _, e := range events {
		group := e.Artist.GenreGroup
		if group == "" || p.HasGroup(group) {
			continue
		}
		if _, dup := seen[group]; !dup {
			seen[group] = struct{}{}
			unknown = append(unknown, group)
		}
	}

	return unknown
}
