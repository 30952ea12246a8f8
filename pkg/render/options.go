package render

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/scale"
)

// Fallback holds the domain upper bounds used when a column has no usable
// values. For the line chart X is the minimum span of the year axis.
//
// A bound must be positive: [0, 0] is the degenerate domain a fallback
// replaces. Zero therefore means "use the preset", and Validate rejects
// negative bounds.
type Fallback struct {
	X    float64 `toml:"x" json:"x"`
	Y    float64 `toml:"y" json:"y"`
	Size float64 `toml:"size" json:"size"`
}

// Options configures a renderer. Zero fields take the kind's defaults, so a
// field cannot be set to its zero value explicitly. Compound fields are
// compared whole: SizeRange {0, 40} is kept, only {0, 0} means unset.
type Options struct {
	Height   float64
	Margin   layout.Margin
	Fallback Fallback
	Palette  []string
	Groups   []string // fixed color domain, in legend order
	XTitle   string
	YTitle   string
	Ticks    int

	TipLabels []string // bubble tooltip row labels for X, Y and Size

	SizeRange [2]float64 // bubble radius range
	Ramp      [2]string  // tile fill colors, low to high
	Tile      layout.TileGrid
}

// DefaultOptions returns the preset for kind.
func DefaultOptions(kind Kind) Options {
	switch kind {
	case KindBubble:
		return Options{
			Height:    500,
			Margin:    layout.Margin{Top: 40, Right: 120, Bottom: 60, Left: 80},
			Fallback:  Fallback{X: 10000, Y: 5000, Size: 4e7},
			Palette:   scale.Tableau10,
			Groups:    []string{"Africa", "Asia", "Europe", "North America", "Oceania", "South America"},
			XTitle:    "Tax Revenues per Capita ($)",
			YTitle:    "Public Health Expenditure per Capita ($)",
			Ticks:     10,
			TipLabels: DefaultTipLabels,
			SizeRange: [2]float64{5, 40},
		}
	case KindTile:
		return Options{
			Fallback: Fallback{Y: 100},
			Ramp:     [2]string{"#f7e1d7", "#b55a30"},
			Tile:     layout.DefaultTileGrid(),
		}
	}
	return Options{
		Height:   500,
		Margin:   layout.Margin{Top: 40, Right: 80, Bottom: 40, Left: 30},
		Fallback: Fallback{X: 1, Y: 1},
		Palette:  scale.Category10,
		XTitle:   "Year",
		Ticks:    10,
	}
}

// WithDefaults fills zero fields of o from the kind's preset.
func (o Options) WithDefaults(kind Kind) Options {
	d := DefaultOptions(kind)
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Margin == (layout.Margin{}) {
		o.Margin = d.Margin
	}
	if o.Fallback.X == 0 {
		o.Fallback.X = d.Fallback.X
	}
	if o.Fallback.Y == 0 {
		o.Fallback.Y = d.Fallback.Y
	}
	if o.Fallback.Size == 0 {
		o.Fallback.Size = d.Fallback.Size
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if o.Groups == nil {
		o.Groups = d.Groups
	}
	if o.XTitle == "" {
		o.XTitle = d.XTitle
	}
	if o.YTitle == "" {
		o.YTitle = d.YTitle
	}
	if o.Ticks == 0 {
		o.Ticks = d.Ticks
	}
	if len(o.TipLabels) == 0 {
		o.TipLabels = d.TipLabels
	}
	if o.SizeRange == [2]float64{} {
		o.SizeRange = d.SizeRange
	}
	if o.Ramp == [2]string{} {
		o.Ramp = d.Ramp
	}
	if o.Tile == (layout.TileGrid{}) {
		o.Tile = d.Tile
	}
	return o
}

// Validate checks o for values no renderer can draw with.
func (o Options) Validate() error {
	for name, v := range map[string]float64{
		"height":        o.Height,
		"margin.top":    o.Margin.Top,
		"margin.right":  o.Margin.Right,
		"margin.bottom": o.Margin.Bottom,
		"margin.left":   o.Margin.Left,
	} {
		if err := errors.ValidateDimension(name, v); err != nil {
			return err
		}
	}
	for name, v := range map[string]float64{
		"fallback.x":    o.Fallback.X,
		"fallback.y":    o.Fallback.Y,
		"fallback.size": o.Fallback.Size,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a positive bound, got %v", name, v)
		}
	}
	if o.SizeRange[0] < 0 || o.SizeRange[1] < o.SizeRange[0] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid size range %v", o.SizeRange)
	}
	if o.Tile != (layout.TileGrid{}) && o.Tile.TileSize+o.Tile.Padding <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tile size plus padding must be positive")
	}
	return nil
}
