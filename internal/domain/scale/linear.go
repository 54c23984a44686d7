// Package scale derives pixel-space mappings from the visible window and the
// canvas dimensions.
package scale

import "math"

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	round  bool
	clamp  bool
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Rounded returns a copy of s whose outputs are rounded to whole numbers.
func (s Linear) Rounded() Linear {
	s.round = true
	return s
}

// Clamped returns a copy of s whose inputs are clamped to the domain.
func (s Linear) Clamped() Linear {
	s.clamp = true
	return s
}

// Domain returns the domain bounds.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range bounds.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Map applies the scale to v. A degenerate domain maps to the middle of the range.
func (s Linear) Map(v float64) float64 {
	t := 0.5
	if span := s.d1 - s.d0; span != 0 {
		t = (v - s.d0) / span
	}
	if s.clamp {
		t = clamp01(t)
	}
	out := s.r0 + t*(s.r1-s.r0)
	if s.round {
		out = roundHalfUp(out)
	}
	return out
}

// MapInt applies the scale and converts the result to a pixel coordinate.
func (s Linear) MapInt(v float64) int {
	return int(roundHalfUp(s.Map(v)))
}

// Invert maps a range value back onto the domain. Rounding is not applied.
func (s Linear) Invert(v float64) float64 {
	t := 0.5
	if span := s.r1 - s.r0; span != 0 {
		t = (v - s.r0) / span
	}
	if s.clamp {
		t = clamp01(t)
	}
	return s.d0 + t*(s.d1-s.d0)
}

// DomainPerUnit returns how many domain units one range unit covers.
func (s Linear) DomainPerUnit() float64 {
	span := s.r1 - s.r0
	if span == 0 {
		return 0
	}
	return (s.d1 - s.d0) / span
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// roundHalfUp rounds .5 towards +Inf so negative and positive pixels agree.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
