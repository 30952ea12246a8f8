package render

import (
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

const (
	lineWidth   = 1.5
	labelOffset = 5
	guideColor  = "#888"
	guideDash   = "4 4"
)

type lineRenderer struct {
	opts Options
}

// NewLine returns the multi-series line chart renderer. Only selected
// categories are drawn; an empty selection draws axes and no series.
func NewLine(opts Options) Renderer {
	return &lineRenderer{opts: opts.WithDefaults(KindLine)}
}

func (r *lineRenderer) Kind() Kind { return KindLine }

func (r *lineRenderer) Render(s *surface.Surface, in Input) Pass {
	p, ok := begin(s, KindLine, in, r.opts.Height)
	if !ok {
		return p
	}
	m := r.opts.Margin
	ds := in.Dataset

	x0, x1 := m.Horizontal(p.Width)
	y0, y1 := m.Vertical(p.Height)
	p.X = scale.NewLinear(scale.ExtentDomain(ds.Values(dataset.FieldX), r.opts.Fallback.X), x0, x1)
	p.Y = scale.NewLinear(scale.MaxDomain(ds.Values(dataset.FieldY), r.opts.Fallback.Y), y0, y1).Nice(r.opts.Ticks)
	p.Colors = scale.NewOrdinal(r.opts.Palette, ds.Categories()...)
	p.Series = layout.Lines(ds, in.Selection.Keys(), p.X, p.Y)

	axis{orient: bottom, scale: p.X, pos: y0, ticks: r.opts.Ticks, format: Integer}.draw(s)
	title(s, r.opts.XTitle, (x1-x0)/2+x0, y0+30, 12, false, 0)
	axis{orient: left, scale: p.Y, pos: x0, ticks: r.opts.Ticks}.draw(s)
	if r.opts.YTitle != "" {
		title(s, r.opts.YTitle, x0-m.Left+12, (y0+y1)/2, 12, false, -90)
	}

	for i, sr := range p.Series {
		s.Add(surface.Element{
			Shape:  surface.ShapePath,
			Class:  ClassSeriesLine,
			Key:    sr.Key,
			Datum:  i,
			Points: sr.Path(),
			Style: surface.Style{
				Stroke:        p.Colors.Color(sr.Key),
				StrokeWidth:   lineWidth,
				Opacity:       1,
				StrokeOpacity: 1,
			},
		})
	}
	for i, sr := range p.Series {
		s.Add(surface.Element{
			Shape:       surface.ShapeText,
			Class:       ClassSeriesLabel,
			Key:         sr.Key,
			Datum:       i,
			Interactive: true,
			X:           x1 + labelOffset,
			Y:           sr.Last().Y,
			Text:        sr.Key,
			Anchor:      surface.AnchorStart,
			Style: surface.Style{
				Fill:          p.Colors.Color(sr.Key),
				FontSize:      10,
				Bold:          true,
				Opacity:       1,
				StrokeOpacity: 1,
			},
		})
	}

	guide := s.Add(surface.Element{
		Shape: surface.ShapeLine,
		Class: ClassGuide,
		Datum: -1,
		X:     x0,
		Y:     y1,
		X2:    x0,
		Y2:    y0,
		Style: surface.Style{Stroke: guideColor, StrokeWidth: 1, Dash: guideDash, Opacity: 0, StrokeOpacity: 1},
	})
	p.Guide = guide.ID

	p.Tracker = m.Plot(p.Width, p.Height)
	s.Add(surface.Element{
		Shape:       surface.ShapeRect,
		Class:       ClassTracker,
		Datum:       -1,
		Interactive: true,
		X:           p.Tracker.X,
		Y:           p.Tracker.Y,
		W:           p.Tracker.W,
		H:           p.Tracker.H,
		Style:       surface.Style{Opacity: 1, StrokeOpacity: 1},
	})
	return p
}
