package interact

import (
	"math"
	"sort"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// Highlight styling.
const (
	DimOpacity     = 0.1
	EmphasisStroke = "#333"
	EmphasisWidth  = 1.5
)

// Tooltip anchor offsets from the pointer.
var (
	bubbleTipOffset = surface.Point{X: 10, Y: -20}
	seriesTipOffset = surface.Point{X: 10, Y: -10}
)

// Controller is the interaction state of one chart instance. It is not safe
// for concurrent use; the owning chart serializes calls.
type Controller struct {
	id   string
	tips *surface.TooltipRegistry

	s    *surface.Surface
	pass render.Pass

	hot    *surface.Element
	key    string
	lit    bool
	guideX float64
}

// New returns a controller that shows tooltips in tips under the owner id.
// A nil registry uses [surface.SharedTooltip].
func New(id string, tips *surface.TooltipRegistry) *Controller {
	if tips == nil {
		tips = surface.SharedTooltip()
	}
	return &Controller{id: id, tips: tips}
}

// ID returns the tooltip owner id.
func (c *Controller) ID() string { return c.id }

// Attach binds the controller to a freshly rendered surface. Any highlight
// from the previous pass is dropped and the tooltip and guide are hidden.
func (c *Controller) Attach(s *surface.Surface, p render.Pass) {
	c.s, c.pass = s, p
	c.hot = nil
	if g := c.guide(); g != nil {
		c.guideX = g.X
	}
	c.setHighlight("", false)
	c.hideTip()
	c.hideGuide()
}

// Highlight returns the highlighted key, if any.
func (c *Controller) Highlight() (string, bool) { return c.key, c.lit }

// Hovered returns the element the pointer is over, or nil.
func (c *Controller) Hovered() *surface.Element { return c.hot }

// Tooltip returns the tooltip state as seen by this chart. The state is
// reported hidden when another chart owns the tooltip.
func (c *Controller) Tooltip() surface.TooltipState {
	st, ok := c.tips.State()
	if !ok || st.Owner != c.id {
		return surface.TooltipState{}
	}
	return st
}

// Enter handles the pointer entering el at p.
func (c *Controller) Enter(el *surface.Element, p surface.Point) {
	if c.s == nil || el == nil {
		return
	}
	if err := c.inSurface(p); err != nil {
		c.ignore(p)
		return
	}

	c.s.RestoreAll()
	c.hot = el
	switch el.Class {
	case render.ClassBubble:
		c.highlightGroup(el.Group)
		if el.Datum >= 0 && el.Datum < len(c.pass.Entries) {
			c.showTip(render.BubbleTooltip(c.pass.Entries[el.Datum].Record, c.pass.TipLabels), p.Add(bubbleTipOffset.X, bubbleTipOffset.Y))
		}
	case render.ClassLegendItem:
		c.highlightGroup(el.Group)
	case render.ClassSeriesLabel:
		c.highlightSeries(el.Key)
	case render.ClassTracker:
		c.Move(p)
	}
}

// Move handles pointer motion. Over the line chart's tracking rectangle it
// rebuilds the per-series tooltip and moves the guide; over a bubble the
// tooltip follows the pointer.
func (c *Controller) Move(p surface.Point) {
	if c.s == nil {
		return
	}
	if err := c.inSurface(p); err != nil {
		c.ignore(p)
		return
	}

	switch {
	case c.tracking():
		if !c.pass.Tracker.Contains(p) {
			c.ignore(p)
			return
		}
		c.track(p)
	case c.hot != nil && c.hot.Class == render.ClassBubble:
		c.tips.Move(c.id, p.Add(bubbleTipOffset.X, bubbleTipOffset.Y))
	}
}

// Leave clears the highlight, restores every element, and hides the tooltip
// and guide.
func (c *Controller) Leave() {
	if c.s == nil {
		return
	}
	c.s.RestoreAll()
	c.hot = nil
	c.setHighlight("", false)
	c.hideTip()
	c.hideGuide()
}

// PointerAt dispatches enter, leave and move transitions for a host that
// only reports pointer coordinates.
func (c *Controller) PointerAt(p surface.Point) {
	if c.s == nil {
		return
	}
	if err := c.inSurface(p); err != nil {
		c.ignore(p)
		return
	}
	el := c.s.Hit(p)
	if el == c.hot {
		if el != nil {
			c.Move(p)
		}
		return
	}
	if c.hot != nil {
		c.Leave()
	}
	if el != nil {
		c.Enter(el, p)
	}
}

func (c *Controller) tracking() bool {
	return c.pass.Kind == render.KindLine && c.pass.HasTracker() &&
		(c.hot == nil || c.hot.Class == render.ClassTracker)
}

func (c *Controller) track(p surface.Point) {
	x := math.Round(c.pass.X.Invert(p.X))

	type row struct {
		key   string
		value float64
	}
	var rows []row
	for _, s := range c.pass.Series {
		if v, ok := s.At(x); ok {
			rows = append(rows, row{s.Key, v.Record.Y})
		}
	}
	if len(rows) == 0 {
		c.hideTip()
		c.hideGuide()
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })

	content := surface.TooltipContent{Title: render.Integer(x)}
	for _, r := range rows {
		color := ""
		if c.pass.Colors != nil {
			color = c.pass.Colors.Color(r.key)
		}
		content.Rows = append(content.Rows, render.SeriesRow(r.key, r.value, color))
	}
	c.showTip(content, p.Add(seriesTipOffset.X, seriesTipOffset.Y))

	if g := c.guide(); g != nil {
		g.X, g.X2 = p.X, p.X
		g.Style.Opacity = 1
	}
}

func (c *Controller) highlightGroup(key string) {
	for _, e := range c.s.Select(render.ClassBubble) {
		if e.Group == key {
			e.Style.Opacity = 1
			e.Style.Stroke = EmphasisStroke
			e.Style.StrokeWidth = EmphasisWidth
		} else {
			e.Style.Opacity = DimOpacity
		}
	}
	c.setHighlight(key, true)
}

func (c *Controller) highlightSeries(key string) {
	for _, e := range c.s.Select(render.ClassSeriesLine) {
		if e.Key != key {
			e.Style.StrokeOpacity = DimOpacity
		}
	}
	for _, e := range c.s.Select(render.ClassSeriesLabel) {
		if e.Key != key {
			e.Style.Opacity = DimOpacity
		}
	}
	c.setHighlight(key, true)
}

func (c *Controller) setHighlight(key string, lit bool) {
	if c.key == key && c.lit == lit {
		return
	}
	c.key, c.lit = key, lit
	observability.Interaction().OnHighlight(c.id, key)
}

func (c *Controller) showTip(content surface.TooltipContent, anchor surface.Point) {
	if c.tips.Show(c.id, content, anchor) {
		observability.Interaction().OnTooltip(c.id, true, len(content.Rows))
	}
}

func (c *Controller) hideTip() {
	if st, ok := c.tips.State(); ok && st.Visible && st.Owner == c.id {
		c.tips.Hide(c.id)
		observability.Interaction().OnTooltip(c.id, false, 0)
	}
}

func (c *Controller) guide() *surface.Element {
	elems := c.s.Elements()
	if c.pass.Guide < 0 || c.pass.Guide >= len(elems) {
		return nil
	}
	return elems[c.pass.Guide]
}

func (c *Controller) hideGuide() {
	if c.s == nil {
		return
	}
	if g := c.guide(); g != nil {
		g.X, g.X2 = c.guideX, c.guideX
		g.Restore()
	}
}

func (c *Controller) inSurface(p surface.Point) error {
	if !p.Finite() || !c.s.Bounds().Contains(p) {
		return errors.New(errors.ErrCodeInteractionBounds, "pointer (%v, %v) outside chart", p.X, p.Y)
	}
	return nil
}

func (c *Controller) ignore(p surface.Point) {
	observability.Interaction().OnBoundsIgnored(c.id, p.X, p.Y)
}
