package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp is a sequential color scale from a light to a dark color.
type Ramp struct {
	lin      Linear
	from, to colorful.Color
}

// NewRamp builds a ramp over domain d between two hex colors. Unparseable
// colors fall back to black.
func NewRamp(d Domain, from, to string) Ramp {
	return Ramp{lin: NewLinear(d, 0, 1), from: parseHex(from), to: parseHex(to)}
}

// Color returns the hex color for v, blended in RGB space. Values outside the
// domain take the nearest end color.
func (r Ramp) Color(v float64) string {
	t := math.Max(0, math.Min(1, r.lin.Map(v)))
	return r.from.BlendRgb(r.to, t).Clamped().Hex()
}

// Domain returns the input interval.
func (r Ramp) Domain() Domain { return r.lin.Domain() }

func parseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
