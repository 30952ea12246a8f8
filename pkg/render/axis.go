package render

import (
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

const (
	tickSize    = 6
	tickPadding = 3
	axisColor   = "#000"
)

type orient int

const (
	bottom orient = iota
	left
)

// axis draws a d3-style axis: a domain line, tick marks and tick labels.
type axis struct {
	orient orient
	scale  scale.Linear
	pos    float64 // y of a bottom axis, x of a left axis
	ticks  int
	format func(float64) string
}

func (a axis) draw(s *surface.Surface) {
	r0, r1 := a.scale.Range()
	stroke := surface.Style{Stroke: axisColor, StrokeWidth: 1, Opacity: 1, StrokeOpacity: 1}
	label := surface.Style{Fill: axisColor, FontSize: 10, Opacity: 1, StrokeOpacity: 1}

	switch a.orient {
	case bottom:
		s.Add(surface.Element{Shape: surface.ShapeLine, Class: ClassAxis, Datum: -1,
			X: r0, Y: a.pos, X2: r1, Y2: a.pos, Style: stroke})
	case left:
		s.Add(surface.Element{Shape: surface.ShapeLine, Class: ClassAxis, Datum: -1,
			X: a.pos, Y: r0, X2: a.pos, Y2: r1, Style: stroke})
	}

	ticks := a.scale.Ticks(a.ticks)
	format := a.format
	if format == nil {
		format = TickFormat(ticks)
	}
	for _, t := range ticks {
		p := a.scale.Map(t)
		text := format(t)
		switch a.orient {
		case bottom:
			s.Add(surface.Element{Shape: surface.ShapeLine, Class: ClassTick, Key: text, Datum: -1,
				X: p, Y: a.pos, X2: p, Y2: a.pos + tickSize, Style: stroke})
			s.Add(surface.Element{Shape: surface.ShapeText, Class: ClassTickLabel, Key: text, Datum: -1,
				X: p, Y: a.pos + tickSize + tickPadding + 10, Text: text, Anchor: surface.AnchorMiddle, Style: label})
		case left:
			s.Add(surface.Element{Shape: surface.ShapeLine, Class: ClassTick, Key: text, Datum: -1,
				X: a.pos - tickSize, Y: p, X2: a.pos, Y2: p, Style: stroke})
			s.Add(surface.Element{Shape: surface.ShapeText, Class: ClassTickLabel, Key: text, Datum: -1,
				X: a.pos - tickSize - tickPadding, Y: p + 3, Text: text, Anchor: surface.AnchorEnd, Style: label})
		}
	}
}

// title adds an axis title. rotate is in degrees around (x, y).
func title(s *surface.Surface, text string, x, y, size float64, bold bool, rotate float64) {
	if text == "" {
		return
	}
	s.Add(surface.Element{
		Shape:  surface.ShapeText,
		Class:  ClassAxisTitle,
		Datum:  -1,
		X:      x,
		Y:      y,
		Text:   text,
		Anchor: surface.AnchorMiddle,
		Rotate: rotate,
		Style:  surface.Style{Fill: axisColor, FontSize: size, Bold: bold, Opacity: 1, StrokeOpacity: 1},
	})
}
