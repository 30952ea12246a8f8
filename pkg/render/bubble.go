package render

import (
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// BubbleOpacity is the resting opacity of a bubble.
const BubbleOpacity = 0.7

type bubbleRenderer struct {
	opts Options
}

// NewBubble returns the bubble plot renderer. Bubble area is proportional to
// the size field; color follows the group field.
func NewBubble(opts Options) Renderer {
	return &bubbleRenderer{opts: opts.WithDefaults(KindBubble)}
}

func (r *bubbleRenderer) Kind() Kind { return KindBubble }

func (r *bubbleRenderer) Render(s *surface.Surface, in Input) Pass {
	p, ok := begin(s, KindBubble, in, r.opts.Height)
	if !ok {
		return p
	}
	m := r.opts.Margin
	ds := in.Dataset
	fb := r.opts.Fallback

	x0, x1 := m.Horizontal(p.Width)
	y0, y1 := m.Vertical(p.Height)
	p.X = scale.NewLinear(scale.MaxDomain(ds.Values(dataset.FieldX), fb.X), x0, x1)
	p.Y = scale.NewLinear(scale.MaxDomain(ds.Values(dataset.FieldY), fb.Y), y0, y1)
	p.Size = scale.NewSqrt(scale.MaxDomain(ds.Values(dataset.FieldSize), fb.Size), r.opts.SizeRange[0], r.opts.SizeRange[1])
	p.Colors = scale.NewOrdinal(r.opts.Palette, r.opts.Groups...)
	p.Entries = layout.Scatter(ds, p.X, p.Y, p.Size)
	p.TipLabels = r.opts.TipLabels

	axis{orient: bottom, scale: p.X, pos: y0, ticks: r.opts.Ticks}.draw(s)
	title(s, r.opts.XTitle, (x1-x0)/2+x0, y0+40, 14, true, 0)
	axis{orient: left, scale: p.Y, pos: x0, ticks: r.opts.Ticks}.draw(s)
	title(s, r.opts.YTitle, x0-60, (y0+y1)/2, 14, true, -90)

	for i, e := range p.Entries {
		s.Add(surface.Element{
			Shape:       surface.ShapeCircle,
			Class:       ClassBubble,
			Key:         e.Key,
			Group:       e.Group,
			Datum:       i,
			Interactive: true,
			X:           e.X,
			Y:           e.Y,
			R:           e.Radius,
			Style:       surface.Style{Fill: p.Colors.Color(e.ColorKey), Opacity: BubbleOpacity, StrokeOpacity: 1},
		})
	}
	for i, e := range p.Entries {
		s.Add(surface.Element{
			Shape:  surface.ShapeText,
			Class:  ClassBubbleLabel,
			Key:    e.Key,
			Group:  e.Group,
			Datum:  i,
			X:      e.X,
			Y:      layout.LabelY(e, layout.LabelGap),
			Text:   e.Key,
			Anchor: surface.AnchorMiddle,
			Style:  surface.Style{Fill: "#000", FontSize: 10, Opacity: 1, StrokeOpacity: 1},
		})
	}

	legend(s, p.Colors, x1+20, m.Top)
	return p
}
