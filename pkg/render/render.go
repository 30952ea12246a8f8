package render

import (
	"strings"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/selection"
	"github.com/matzehuels/chartkit/pkg/surface"
	"github.com/matzehuels/chartkit/pkg/viewport"
)

// Kind names a chart type.
type Kind string

// Chart kinds.
const (
	KindLine   Kind = "line"
	KindBubble Kind = "bubble"
	KindTile   Kind = "tile"
)

// ValidKinds lists every supported chart kind.
var ValidKinds = []Kind{KindLine, KindBubble, KindTile}

// ParseKind converts a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindLine, KindBubble, KindTile:
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidChartKind, "unknown chart kind: %q (valid: line, bubble, tile)", s)
}

// Shape returns the dataset shape the kind consumes.
func (k Kind) Shape() dataset.Shape {
	switch k {
	case KindBubble:
		return dataset.ShapeBubble
	case KindTile:
		return dataset.ShapeTile
	}
	return dataset.ShapeSeries
}

// Element classes.
const (
	ClassSeriesLine   = "series-line"
	ClassSeriesLabel  = "series-label"
	ClassBubble       = "bubble"
	ClassBubbleLabel  = "bubble-label"
	ClassLegendItem   = "legend-item"
	ClassLegendSwatch = "legend-swatch"
	ClassGuide        = "guide"
	ClassTracker      = "tracker"
	ClassAxis         = "axis"
	ClassTick         = "tick"
	ClassTickLabel    = "tick-label"
	ClassAxisTitle    = "axis-title"
	ClassTile         = "tile"
	ClassTileFill     = "tile-fill"
	ClassTileLabel    = "tile-label"
	ClassTileValue    = "tile-value"
	ClassGroupTitle   = "group-title"
)

// Input is everything a render pass depends on.
type Input struct {
	Dataset   *dataset.Dataset
	Viewport  viewport.Size
	Selection selection.Set
}

// Ready reports whether the input is complete enough to draw.
func (in Input) Ready() bool {
	return !in.Dataset.Empty() && in.Viewport.Ready()
}

// Pass describes the result of one render. Scales and layouts are the exact
// instances used to place elements, so interaction can invert them.
type Pass struct {
	Kind   Kind
	Ready  bool
	Width  float64
	Height float64

	X, Y   scale.Linear
	Size   scale.Sqrt
	Colors *scale.Ordinal
	Ramp   scale.Ramp

	Series  []layout.Series
	Entries []layout.Entry
	Tiles   layout.TileLayout

	// TipLabels name the bubble tooltip rows.
	TipLabels []string

	// Tracker is the pointer tracking rectangle of the line chart.
	Tracker surface.Rect
	// Guide is the element ID of the vertical hover line, or -1.
	Guide int
}

// HasTracker reports whether the pass drew a tracking rectangle.
func (p Pass) HasTracker() bool { return p.Ready && !p.Tracker.Empty() }

// Renderer draws one chart kind.
type Renderer interface {
	Kind() Kind
	Render(s *surface.Surface, in Input) Pass
}

// New returns the renderer for kind configured with opts.
func New(kind Kind, opts Options) (Renderer, error) {
	switch kind {
	case KindLine:
		return NewLine(opts), nil
	case KindBubble:
		return NewBubble(opts), nil
	case KindTile:
		return NewTile(opts), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidChartKind, "unknown chart kind: %q", kind)
}

// begin clears s and returns the empty pass for an input that is not ready.
func begin(s *surface.Surface, kind Kind, in Input, height float64) (Pass, bool) {
	s.Clear()
	p := Pass{Kind: kind, Guide: -1}
	if !in.Ready() {
		s.Resize(max(in.Viewport.Width, 0), 0)
		return p, false
	}
	if height <= 0 {
		height = in.Viewport.Height
	}
	p.Ready = true
	p.Width, p.Height = in.Viewport.Width, height
	s.Resize(p.Width, p.Height)
	return p, true
}
