package scale

import "math"

// Sqrt maps a non-negative magnitude to a radius so that the area of the
// drawn circle, not its radius, is linear in the value.
type Sqrt struct {
	lin Linear
	d   Domain
}

// NewSqrt builds a square-root scale from domain d to [r0, r1]. Negative
// values, in the domain or at Map time, are treated as zero.
func NewSqrt(d Domain, r0, r1 float64) Sqrt {
	root := Domain{math.Sqrt(math.Max(d.Min, 0)), math.Sqrt(math.Max(d.Max, 0))}
	return Sqrt{lin: NewLinear(root, r0, r1), d: d}
}

// Map converts a magnitude to a radius.
func (s Sqrt) Map(v float64) float64 {
	return s.lin.Map(math.Sqrt(math.Max(v, 0)))
}

// Domain returns the input interval.
func (s Sqrt) Domain() Domain { return s.d }

// Range returns the output interval.
func (s Sqrt) Range() (r0, r1 float64) { return s.lin.Range() }
