package render

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/selection"
	"github.com/matzehuels/chartkit/pkg/surface"
	"github.com/matzehuels/chartkit/pkg/viewport"
)

func mustDataset(t *testing.T, shape dataset.Shape, recs ...dataset.Record) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(shape, recs)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func seriesData(t *testing.T) *dataset.Dataset {
	return mustDataset(t, dataset.ShapeSeries,
		dataset.Record{Category: "A", X: 2000, Y: 5},
		dataset.Record{Category: "A", X: 2010, Y: 8},
		dataset.Record{Category: "B", X: 2000, Y: 3},
		dataset.Record{Category: "B", X: 2005, Y: 4},
		dataset.Record{Category: "C", X: 2010, Y: 1},
	)
}

func bubbleData(t *testing.T) *dataset.Dataset {
	return mustDataset(t, dataset.ShapeBubble,
		dataset.Record{Category: "Chile", Group: "South America", X: 4000, Y: 900, Size: 19e6},
		dataset.Record{Category: "Japan", Group: "Asia", X: 12000, Y: 3800, Size: 125e6},
		dataset.Record{Category: "Kenya", Group: "Africa", X: 300, Y: 40, Size: 53e6},
	)
}

func tileData(t *testing.T) *dataset.Dataset {
	return mustDataset(t, dataset.ShapeTile,
		dataset.Record{Category: "Japan", Group: "Asia", Y: 9.1},
		dataset.Record{Category: "India", Group: "Asia", Y: 1.2},
		dataset.Record{Category: "Chile", Group: "South America", Y: 5.2},
		dataset.Record{Category: "Tuvalu", Group: "Oceania", Y: 26.3},
	)
}

var vp = viewport.Size{Width: 1000, Height: 600}

func countClass(s *surface.Surface, class string) int {
	return len(s.Select(class))
}

func TestRenderNotReady(t *testing.T) {
	renderers := []Renderer{NewLine(Options{}), NewBubble(Options{}), NewTile(Options{})}
	inputs := []Input{
		{Dataset: nil, Viewport: vp},
		{Dataset: seriesData(t), Viewport: viewport.Size{}},
		{Dataset: mustDataset(t, dataset.ShapeSeries), Viewport: vp},
	}
	for _, r := range renderers {
		for i, in := range inputs {
			s := surface.New()
			s.Add(surface.Element{Shape: surface.ShapeRect, Class: "stale"})
			p := r.Render(s, in)
			if p.Ready {
				t.Errorf("%s input %d: Ready = true", r.Kind(), i)
			}
			if s.Len() != 0 {
				t.Errorf("%s input %d: surface has %d elements, want 0", r.Kind(), i, s.Len())
			}
			if p.HasTracker() || p.Guide != -1 {
				t.Errorf("%s input %d: tracker or guide on empty pass", r.Kind(), i)
			}
		}
	}
}

func TestLineSingleSeriesScenario(t *testing.T) {
	ds := mustDataset(t, dataset.ShapeSeries,
		dataset.Record{Category: "X", X: 2000, Y: 5},
		dataset.Record{Category: "X", X: 2010, Y: 8},
	)
	s := surface.New()
	p := NewLine(Options{}).Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New("X")})

	paths := s.Select(ClassSeriesLine)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	pts := paths[0].Points
	want := []surface.Point{{X: p.X.Map(2000), Y: p.Y.Map(5)}, {X: p.X.Map(2010), Y: p.Y.Map(8)}}
	if !reflect.DeepEqual(pts, want) {
		t.Errorf("points = %v, want %v", pts, want)
	}
	if pts[0].X != 30 || pts[1].X != 920 {
		t.Errorf("x positions = %v, %v, want margin-bound 30 and 920", pts[0].X, pts[1].X)
	}
	if paths[0].Style.StrokeWidth != 1.5 {
		t.Errorf("stroke width = %v", paths[0].Style.StrokeWidth)
	}

	labels := s.Select(ClassSeriesLabel)
	if len(labels) != 1 || labels[0].X != 925 || labels[0].Y != pts[1].Y {
		t.Errorf("label = %+v", labels)
	}
	if !labels[0].Interactive {
		t.Error("series label should be interactive")
	}
}

func TestLineTrackerAndGuide(t *testing.T) {
	s := surface.New()
	p := NewLine(Options{}).Render(s, Input{Dataset: seriesData(t), Viewport: vp, Selection: selection.New("A")})

	if !p.HasTracker() {
		t.Fatal("line pass should have a tracker")
	}
	want := surface.Rect{X: 30, Y: 40, W: 890, H: 420}
	if p.Tracker != want {
		t.Errorf("Tracker = %+v, want %+v", p.Tracker, want)
	}
	guide := s.Elements()[p.Guide]
	if guide.Class != ClassGuide || guide.Visible() {
		t.Errorf("guide = %+v, want hidden guide", guide)
	}
	if guide.Y != 40 || guide.Y2 != 460 || guide.Style.Dash != "4 4" {
		t.Errorf("guide geometry = %+v", guide)
	}
	if hit := s.Hit(surface.Point{X: 500, Y: 200}); hit == nil || hit.Class != ClassTracker {
		t.Errorf("Hit inside plot = %+v, want tracker", hit)
	}
}

func TestLineColorsStableAcrossSelections(t *testing.T) {
	ds := seriesData(t)
	r := NewLine(Options{})

	s := surface.New()
	r.Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New("C")})
	onlyC := s.Select(ClassSeriesLine)[0].Style.Stroke

	r.Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New("A", "B", "C")})
	allC := s.Select(ClassSeriesLine)[2].Style.Stroke

	if onlyC != allC {
		t.Errorf("color of C changed with selection: %s vs %s", onlyC, allC)
	}
}

func TestRenderIdempotent(t *testing.T) {
	tests := []struct {
		r  Renderer
		in Input
	}{
		{NewLine(Options{}), Input{Dataset: seriesData(t), Viewport: vp, Selection: selection.New("A", "B")}},
		{NewBubble(Options{}), Input{Dataset: bubbleData(t), Viewport: vp}},
		{NewTile(Options{}), Input{Dataset: tileData(t), Viewport: vp}},
	}
	for _, tt := range tests {
		t.Run(string(tt.r.Kind()), func(t *testing.T) {
			s := surface.New()
			tt.r.Render(s, tt.in)
			first := s.Snapshot()
			tt.r.Render(s, tt.in)
			second := s.Snapshot()

			if len(first) == 0 {
				t.Fatal("nothing rendered")
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("second render differs: %d vs %d elements", len(first), len(second))
			}
		})
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	ds := seriesData(t)
	r := NewLine(Options{})
	s := surface.New()

	r.Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New("A", "B")})
	first := s.Snapshot()

	p := r.Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New()})
	if n := countClass(s, ClassSeriesLine); n != 0 {
		t.Errorf("empty selection drew %d series", n)
	}
	if !p.Ready || countClass(s, ClassAxis) != 2 {
		t.Error("empty selection should still draw axes")
	}

	r.Render(s, Input{Dataset: ds, Viewport: vp, Selection: selection.New("A", "B")})
	if !reflect.DeepEqual(first, s.Snapshot()) {
		t.Error("re-selecting {A, B} differs from the first render")
	}
	if n := countClass(s, ClassSeriesLine); n != 2 {
		t.Errorf("got %d series, want 2", n)
	}
}

func TestLineUnknownSelectionDropped(t *testing.T) {
	s := surface.New()
	p := NewLine(Options{}).Render(s, Input{Dataset: seriesData(t), Viewport: vp, Selection: selection.New("A", "Atlantis")})
	if len(p.Series) != 1 || countClass(s, ClassSeriesLabel) != 1 {
		t.Errorf("unknown key produced output: %d series", len(p.Series))
	}
}

func TestDegenerateDataStaysFinite(t *testing.T) {
	tests := []struct {
		name string
		r    Renderer
		ds   *dataset.Dataset
		sel  selection.Set
	}{
		{"line single", NewLine(Options{}), mustDataset(t, dataset.ShapeSeries, dataset.Record{Category: "X", X: 2000, Y: 0}), selection.New("X")},
		{"bubble zeros", NewBubble(Options{}), mustDataset(t, dataset.ShapeBubble, dataset.Record{Category: "Y", Group: "Asia"}), selection.Set{}},
		{"tile zero", NewTile(Options{}), mustDataset(t, dataset.ShapeTile, dataset.Record{Category: "Z", Group: "Europe"}), selection.Set{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := surface.New()
			tt.r.Render(s, Input{Dataset: tt.ds, Viewport: vp, Selection: tt.sel})
			for _, e := range s.Elements() {
				for _, v := range []float64{e.X, e.Y, e.X2, e.Y2, e.W, e.H, e.R} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("%s element %d has non-finite geometry: %+v", e.Class, e.ID, e)
					}
				}
				for _, pt := range e.Points {
					if !pt.Finite() {
						t.Fatalf("%s element %d has non-finite point %v", e.Class, e.ID, pt)
					}
				}
			}
		})
	}
}

func TestBubbleRender(t *testing.T) {
	s := surface.New()
	p := NewBubble(Options{}).Render(s, Input{Dataset: bubbleData(t), Viewport: vp})

	bubbles := s.Select(ClassBubble)
	if len(bubbles) != 3 {
		t.Fatalf("got %d bubbles", len(bubbles))
	}
	for _, b := range bubbles {
		if b.Style.Opacity != BubbleOpacity || b.Style.Stroke != "" {
			t.Errorf("bubble %s resting style = %+v", b.Key, b.Style)
		}
	}
	japan := bubbles[1]
	if japan.Key != "Japan" || japan.Group != "Asia" || japan.R != 40 {
		t.Errorf("japan = %+v", japan)
	}
	if japan.X != 880 || japan.Y != 40 {
		t.Errorf("japan at (%v, %v), want the top-right plot corner", japan.X, japan.Y)
	}

	labels := s.Select(ClassBubbleLabel)
	if labels[1].Y != japan.Y-japan.R-5 {
		t.Errorf("label y = %v", labels[1].Y)
	}

	items := s.Select(ClassLegendItem)
	if len(items) != 6 {
		t.Errorf("legend items = %d, want the 6 continents", len(items))
	}
	if items[0].X != 1000-120+20+15 || items[0].Y != 40+10 {
		t.Errorf("legend item 0 at (%v, %v)", items[0].X, items[0].Y)
	}
	if p.Colors.Color("Asia") != "#f28e2c" {
		t.Errorf("Asia color = %s", p.Colors.Color("Asia"))
	}
	if countClass(s, ClassAxisTitle) != 2 {
		t.Error("bubble chart should have two axis titles")
	}
}

func TestBubbleLegendGrowsWithUnknownGroup(t *testing.T) {
	ds := mustDataset(t, dataset.ShapeBubble, dataset.Record{Category: "Atlantis", Group: "Atlantic", X: 1, Y: 1, Size: 1})
	s := surface.New()
	NewBubble(Options{}).Render(s, Input{Dataset: ds, Viewport: vp})
	items := s.Select(ClassLegendItem)
	if len(items) != 7 || items[6].Key != "Atlantic" {
		t.Errorf("legend = %d items", len(items))
	}
}

func TestTileRender(t *testing.T) {
	s := surface.New()
	r := NewTile(Options{})
	ds := tileData(t)
	p := r.Render(s, Input{Dataset: ds, Viewport: vp})

	grid := DefaultOptions(KindTile).Tile
	if _, h := s.Size(); h != grid.Measure(ds, 1000) || h != p.Tiles.TotalHeight {
		t.Errorf("surface height = %v, want %v", h, grid.Measure(ds, 1000))
	}
	if n := countClass(s, ClassGroupTitle); n != 3 {
		t.Errorf("group titles = %d, want 3", n)
	}
	if n := countClass(s, ClassTile); n != 4 {
		t.Errorf("tiles = %d, want 4", n)
	}

	values := s.Select(ClassTileValue)
	if values[3].Text != "26.3%" {
		t.Errorf("Tuvalu value text = %q", values[3].Text)
	}
	fills := s.Select(ClassTileFill)
	if fills[3].Style.Fill != "#b55a30" {
		t.Errorf("max value fill = %s, want ramp end", fills[3].Style.Fill)
	}
	if math.Abs(fills[0].H-40*9.1/100) > 1e-9 {
		t.Errorf("fill height = %v", fills[0].H)
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"line", "Bubble", " TILE "} {
		if _, err := ParseKind(in); err != nil {
			t.Errorf("ParseKind(%q) error = %v", in, err)
		}
	}
	_, err := ParseKind("pie")
	if !errors.Is(err, errors.ErrCodeInvalidChartKind) {
		t.Errorf("ParseKind(pie) error = %v", err)
	}
	if _, err := New("pie", Options{}); err == nil {
		t.Error("New(pie) should fail")
	}
	for _, k := range ValidKinds {
		r, err := New(k, Options{})
		if err != nil || r.Kind() != k {
			t.Errorf("New(%s) = %v, %v", k, r, err)
		}
	}
}

func TestKindShape(t *testing.T) {
	if KindLine.Shape() != dataset.ShapeSeries || KindBubble.Shape() != dataset.ShapeBubble || KindTile.Shape() != dataset.ShapeTile {
		t.Error("kind shapes mismatch")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{Height: 300, XTitle: "GDP"}.WithDefaults(KindBubble)
	if o.Height != 300 || o.XTitle != "GDP" {
		t.Error("explicit fields overwritten")
	}
	if o.Fallback.X != 10000 || o.SizeRange != [2]float64{5, 40} || len(o.Groups) != 6 {
		t.Errorf("defaults not applied: %+v", o)
	}

	// A zero radius floor is a real setting; only the all-zero range is unset.
	o = Options{SizeRange: [2]float64{0, 30}, Fallback: Fallback{Y: 80}}.WithDefaults(KindBubble)
	if o.SizeRange != [2]float64{0, 30} {
		t.Errorf("SizeRange = %v, want {0 30} kept", o.SizeRange)
	}
	if o.Fallback != (Fallback{X: 10000, Y: 80, Size: 4e7}) {
		t.Errorf("Fallback = %+v, want unset bounds from preset", o.Fallback)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions(KindLine).Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
	bad := DefaultOptions(KindBubble)
	bad.SizeRange = [2]float64{40, 5}
	if err := bad.Validate(); err == nil {
		t.Error("inverted size range should fail")
	}
	bad = DefaultOptions(KindLine)
	bad.Margin.Left = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative margin should fail")
	}
	bad = DefaultOptions(KindTile)
	bad.Fallback.Y = -100
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("negative fallback error = %v, want INVALID_CONFIG", err)
	}
}

func TestFormat(t *testing.T) {
	if got := Grouped(12345.678); got != "12,345.678" {
		t.Errorf("Grouped = %q", got)
	}
	if got := Grouped(250); got != "250" {
		t.Errorf("Grouped(250) = %q", got)
	}
	if got := Integer(1999.6); got != "2000" {
		t.Errorf("Integer = %q", got)
	}
	if got := TickFormat([]float64{0, 0.5, 1})(0.5); got != "0.5" {
		t.Errorf("TickFormat = %q", got)
	}
	if got := TickFormat([]float64{0, 2000})(4000); got != "4,000" {
		t.Errorf("TickFormat = %q", got)
	}
}

func TestBubbleTooltip(t *testing.T) {
	c := BubbleTooltip(dataset.Record{Category: "Y", X: 12345.5, Y: 800, Size: 38250000}, nil)
	if c.Title != "Y" || len(c.Rows) != 3 {
		t.Fatalf("content = %+v", c)
	}
	want := []string{"$12,345.5", "$800", "38.25 million"}
	for i, w := range want {
		if c.Rows[i].Value != w {
			t.Errorf("row %d = %q, want %q", i, c.Rows[i].Value, w)
		}
	}
	if c.Rows[0].Label != "Tax Revenue" {
		t.Errorf("label = %q", c.Rows[0].Label)
	}
}

func TestSeriesRow(t *testing.T) {
	r := SeriesRow("Chile", 5.257, "#1f77b4")
	if r.Value != "5.26%" || r.Label != "Chile" || r.Color != "#1f77b4" {
		t.Errorf("row = %+v", r)
	}
}
