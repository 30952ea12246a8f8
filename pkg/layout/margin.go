package layout

import "github.com/matzehuels/chartkit/pkg/surface"

// Margin is the space reserved around a plot area, in pixels.
type Margin struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Plot returns the plot area of a width x height frame. The area may be
// empty when the margins exceed the frame.
func (m Margin) Plot(width, height float64) surface.Rect {
	return surface.Rect{
		X: m.Left,
		Y: m.Top,
		W: width - m.Left - m.Right,
		H: height - m.Top - m.Bottom,
	}
}

// Horizontal returns the pixel range [left, width-right].
func (m Margin) Horizontal(width float64) (r0, r1 float64) {
	return m.Left, width - m.Right
}

// Vertical returns the pixel range [height-bottom, top], inverted so larger
// values map upward.
func (m Margin) Vertical(height float64) (r0, r1 float64) {
	return height - m.Bottom, m.Top
}
