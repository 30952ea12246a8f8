package render

import (
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

const (
	legendSwatch = 10
	legendStep   = 20
	legendGap    = 15
)

// legend draws one swatch and one hoverable label per color domain key,
// starting at (x, y).
func legend(s *surface.Surface, colors *scale.Ordinal, x, y float64) {
	for i, key := range colors.Domain() {
		top := y + float64(i)*legendStep
		s.Add(surface.Element{
			Shape: surface.ShapeRect,
			Class: ClassLegendSwatch,
			Key:   key,
			Group: key,
			Datum: -1,
			X:     x,
			Y:     top,
			W:     legendSwatch,
			H:     legendSwatch,
			Style: surface.Style{Fill: colors.Color(key), Opacity: 1, StrokeOpacity: 1},
		})
		s.Add(surface.Element{
			Shape:       surface.ShapeText,
			Class:       ClassLegendItem,
			Key:         key,
			Group:       key,
			Datum:       -1,
			Interactive: true,
			X:           x + legendGap,
			Y:           top + legendSwatch,
			Text:        key,
			Anchor:      surface.AnchorStart,
			Style:       surface.Style{Fill: axisColor, FontSize: 10, Opacity: 1, StrokeOpacity: 1},
		})
	}
}
