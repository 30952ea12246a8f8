package scale

import (
	mscale "github.com/aclements/go-moremath/scale"
)

// Linear maps a continuous domain onto a pixel range [R0, R1]. R1 may be
// smaller than R0, which is how y axes grow upward.
type Linear struct {
	s      mscale.Linear
	r0, r1 float64
}

// NewLinear builds a linear scale from domain d to the range [r0, r1].
func NewLinear(d Domain, r0, r1 float64) Linear {
	return Linear{s: mscale.Linear{Min: d.Min, Max: d.Max}, r0: r0, r1: r1}
}

// Map converts a domain value to a pixel coordinate. Values outside the
// domain extrapolate linearly. A degenerate domain maps to the range midpoint.
func (l Linear) Map(v float64) float64 {
	if l.Domain().Degenerate() || !finite(v) {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + l.s.Map(v)*(l.r1-l.r0)
}

// Invert converts a pixel coordinate back to a domain value.
func (l Linear) Invert(px float64) float64 {
	if l.r0 == l.r1 {
		return l.s.Min
	}
	return l.s.Unmap((px - l.r0) / (l.r1 - l.r0))
}

// Ticks returns at most n evenly spaced round values inside the domain.
func (l Linear) Ticks(n int) []float64 {
	if l.Domain().Degenerate() {
		if finite(l.s.Min) {
			return []float64{l.s.Min}
		}
		return nil
	}
	major, _ := l.s.Ticks(mscale.TickOptions{Max: n})
	return major
}

// Nice returns a copy of l whose domain is extended outward to round tick
// values, using at most n ticks.
func (l Linear) Nice(n int) Linear {
	if l.Domain().Degenerate() {
		return l
	}
	s := l.s
	s.Nice(mscale.TickOptions{Max: n})
	return Linear{s: s, r0: l.r0, r1: l.r1}
}

// Domain returns the input interval.
func (l Linear) Domain() Domain { return Domain{l.s.Min, l.s.Max} }

// Range returns the output interval.
func (l Linear) Range() (r0, r1 float64) { return l.r0, l.r1 }
