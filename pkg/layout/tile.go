package layout

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// TileGrid lays out grouped small multiples.
type TileGrid struct {
	TileSize    float64 // side of a tile
	Padding     float64 // gap between tiles, both axes
	TitleOffset float64 // extra vertical space per group for its title
	LabelOffset float64 // space above each tile for the category label
	Inset       float64 // fill inset as a fraction of TileSize
	Margin      Margin
}

// DefaultTileGrid returns the grid used by the tile chart.
func DefaultTileGrid() TileGrid {
	return TileGrid{
		TileSize:    50,
		Padding:     20,
		TitleOffset: 30,
		LabelOffset: 12,
		Inset:       0.1,
		Margin:      Margin{Top: 40, Right: 20, Bottom: 40, Left: 20},
	}
}

// TileGroup is one placed group.
type TileGroup struct {
	Key    string
	Y      float64 // top of the first tile row
	Height float64 // vertical space consumed, title included
	Tiles  []Entry
}

// TitleY returns the baseline of the group title.
func (g TileGroup) TitleY() float64 { return g.Y - 10 }

// TileLayout is the result of the drawing pass.
type TileLayout struct {
	Groups      []TileGroup
	PerRow      int
	TotalHeight float64
}

// Pitch returns the distance between adjacent tile origins.
func (g TileGrid) Pitch() float64 { return g.TileSize + g.Padding }

// PerRow returns how many tiles fit in one row of width pixels. At least one
// tile is always placed per row.
func (g TileGrid) PerRow(width float64) int {
	n := int(math.Floor(width / g.Pitch()))
	return max(n, 1)
}

// Rows returns the number of rows needed for n tiles.
func (g TileGrid) Rows(n, perRow int) int {
	if n <= 0 {
		return 0
	}
	return (n + perRow - 1) / perRow
}

// GroupHeight returns the vertical space of a group of n tiles.
func (g TileGrid) GroupHeight(n int, width float64) float64 {
	return float64(g.Rows(n, g.PerRow(width)))*g.Pitch() + g.TitleOffset
}

// Measure is the sizing pass: it returns the total surface height needed to
// place ds at width.
func (g TileGrid) Measure(ds *dataset.Dataset, width float64) float64 {
	h := g.Margin.Top
	for _, p := range g.groups(ds) {
		h += g.GroupHeight(len(p.Records), width)
	}
	return h + g.Margin.Bottom
}

// Place is the drawing pass.
func (g TileGrid) Place(ds *dataset.Dataset, width float64) TileLayout {
	perRow := g.PerRow(width)
	out := TileLayout{PerRow: perRow}

	y := g.Margin.Top
	for _, p := range g.groups(ds) {
		grp := TileGroup{
			Key:    p.Key,
			Y:      y,
			Height: g.GroupHeight(len(p.Records), width),
			Tiles:  make([]Entry, len(p.Records)),
		}
		for i, r := range p.Records {
			row, col := i/perRow, i%perRow
			grp.Tiles[i] = Entry{
				Key:      r.Category,
				Group:    p.Key,
				ColorKey: r.Category,
				X:        g.Margin.Left + float64(col)*g.Pitch(),
				Y:        y + float64(row)*g.Pitch(),
				Width:    g.TileSize,
				Height:   g.TileSize,
				Row:      row,
				Col:      col,
				Record:   r,
			}
		}
		out.Groups = append(out.Groups, grp)
		y += grp.Height
	}
	out.TotalHeight = y + g.Margin.Bottom
	return out
}

// Outer returns the tile frame of e, below its label.
func (g TileGrid) Outer(e Entry) surface.Rect {
	return surface.Rect{X: e.X, Y: e.Y + g.LabelOffset, W: g.TileSize, H: g.TileSize}
}

// Fill returns the inner bar of e for a percentage value. The height is not
// clamped: values above 100 overflow the tile and negative values give a
// negative height.
func (g TileGrid) Fill(e Entry, value float64) surface.Rect {
	inset := g.TileSize * g.Inset
	return surface.Rect{
		X: e.X + inset,
		Y: e.Y + g.LabelOffset + inset,
		W: g.TileSize - 2*inset,
		H: g.FillHeight(value),
	}
}

// FillHeight returns the inner bar height for a percentage value.
func (g TileGrid) FillHeight(value float64) float64 {
	return g.TileSize * (1 - 2*g.Inset) * value / 100
}

func (g TileGrid) groups(ds *dataset.Dataset) []dataset.Partition {
	return ds.PartitionBy(func(r dataset.Record) string { return r.Group })
}
