package render

import (
	"fmt"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

type tileRenderer struct {
	opts Options
}

// NewTile returns the grouped tile chart renderer. The surface height is
// computed from the data, so Options.Height is ignored.
func NewTile(opts Options) Renderer {
	return &tileRenderer{opts: opts.WithDefaults(KindTile)}
}

func (r *tileRenderer) Kind() Kind { return KindTile }

func (r *tileRenderer) Render(s *surface.Surface, in Input) Pass {
	grid := r.opts.Tile
	height := 0.0
	if in.Ready() {
		height = grid.Measure(in.Dataset, in.Viewport.Width)
	}
	p, ok := begin(s, KindTile, in, height)
	if !ok {
		return p
	}
	ds := in.Dataset

	p.Tiles = grid.Place(ds, p.Width)
	p.Ramp = scale.NewRamp(scale.MaxDomain(ds.Values(dataset.FieldY), r.opts.Fallback.Y), r.opts.Ramp[0], r.opts.Ramp[1])

	for _, g := range p.Tiles.Groups {
		s.Add(surface.Element{
			Shape:  surface.ShapeText,
			Class:  ClassGroupTitle,
			Key:    g.Key,
			Group:  g.Key,
			Datum:  -1,
			X:      grid.Margin.Left,
			Y:      g.TitleY(),
			Text:   g.Key,
			Anchor: surface.AnchorStart,
			Style:  surface.Style{Fill: "#000", FontSize: 16, Bold: true, Opacity: 1, StrokeOpacity: 1},
		})
		for _, e := range g.Tiles {
			i := len(p.Entries)
			p.Entries = append(p.Entries, e)

			v := e.Record.Y
			outer := grid.Outer(e)
			fill := grid.Fill(e, v)
			cx := e.X + grid.TileSize/2

			s.Add(surface.Element{
				Shape: surface.ShapeRect, Class: ClassTile, Key: e.Key, Group: g.Key, Datum: i,
				X: outer.X, Y: outer.Y, W: outer.W, H: outer.H,
				Style: surface.Style{Fill: "#fff", Stroke: "#000", StrokeWidth: 1, Opacity: 1, StrokeOpacity: 1},
			})
			s.Add(surface.Element{
				Shape: surface.ShapeRect, Class: ClassTileFill, Key: e.Key, Group: g.Key, Datum: i,
				X: fill.X, Y: fill.Y, W: fill.W, H: fill.H,
				Style: surface.Style{Fill: p.Ramp.Color(v), Opacity: 1, StrokeOpacity: 1},
			})
			s.Add(surface.Element{
				Shape: surface.ShapeText, Class: ClassTileLabel, Key: e.Key, Group: g.Key, Datum: i,
				X: cx, Y: e.Y, Text: e.Key, Anchor: surface.AnchorMiddle,
				Style: surface.Style{Fill: "#000", FontSize: 10, Opacity: 1, StrokeOpacity: 1},
			})
			s.Add(surface.Element{
				Shape: surface.ShapeText, Class: ClassTileValue, Key: e.Key, Group: g.Key, Datum: i,
				X: cx, Y: outer.Y + grid.TileSize/2, Text: fmt.Sprintf("%.1f%%", v), Anchor: surface.AnchorMiddle,
				Style: surface.Style{Fill: "#000", FontSize: 10, Opacity: 1, StrokeOpacity: 1},
			})
		}
	}
	return p
}
