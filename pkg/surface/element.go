package surface

import "math"

// Shape is the geometric primitive of an element.
type Shape string

// Supported shapes.
const (
	ShapeLine   Shape = "line"
	ShapeRect   Shape = "rect"
	ShapeCircle Shape = "circle"
	ShapePath   Shape = "path"
	ShapeText   Shape = "text"
)

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Style holds the mutable visual attributes of an element.
// Opacity and StrokeOpacity are in [0, 1]; an empty Fill or Stroke means none.
type Style struct {
	Fill          string  `json:"fill,omitempty"`
	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"stroke_width,omitempty"`
	Dash          string  `json:"dash,omitempty"`
	Opacity       float64 `json:"opacity"`
	StrokeOpacity float64 `json:"stroke_opacity"`
	FontSize      float64 `json:"font_size,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
}

// Element is one drawn primitive.
//
// Geometry fields are interpreted per shape:
//   - line: (X, Y) to (X2, Y2)
//   - rect: top-left (X, Y), size (W, H)
//   - circle: center (X, Y), radius R
//   - path: Points, drawn as a polyline
//   - text: baseline anchor (X, Y), Text, Anchor, optional Rotate in degrees
//
// Class groups elements by role (e.g. "bubble", "series-line") and Key
// identifies the data item they encode. Group carries the highlight key when
// it differs from Key, such as a bubble's continent. Datum indexes the
// render pass's entries, or is -1.
type Element struct {
	ID          int     `json:"id"`
	Shape       Shape   `json:"shape"`
	Class       string  `json:"class"`
	Key         string  `json:"key,omitempty"`
	Group       string  `json:"group,omitempty"`
	Datum       int     `json:"datum"`
	Interactive bool    `json:"interactive,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	W           float64 `json:"w,omitempty"`
	H           float64 `json:"h,omitempty"`
	R           float64 `json:"r,omitempty"`
	Points      []Point `json:"points,omitempty"`
	Text        string  `json:"text,omitempty"`
	Anchor      string  `json:"anchor,omitempty"`
	Rotate      float64 `json:"rotate,omitempty"`

	Style Style `json:"style"`
	Base  Style `json:"-"`
}

// Restore resets the element's style to the style it was added with.
func (e *Element) Restore() { e.Style = e.Base }

// Visible reports whether the element would paint anything.
func (e *Element) Visible() bool { return e.Style.Opacity > 0 }

// Contains reports whether p hits the element. Lines and paths are never hit;
// text uses an approximate box derived from font size and rune count.
func (e *Element) Contains(p Point) bool {
	switch e.Shape {
	case ShapeCircle:
		return math.Hypot(p.X-e.X, p.Y-e.Y) <= e.R
	case ShapeRect:
		return Rect{e.X, e.Y, e.W, e.H}.Contains(p)
	case ShapeText:
		return e.TextBox().Contains(p)
	}
	return false
}

// TextBox returns the approximate bounding box of a text element.
func (e *Element) TextBox() Rect {
	size := e.Style.FontSize
	if size == 0 {
		size = 10
	}
	w := float64(len([]rune(e.Text))) * size * 0.6
	x := e.X
	switch e.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	return Rect{X: x, Y: e.Y - size, W: w, H: size * 1.2}
}
