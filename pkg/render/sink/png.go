package sink

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/fonts"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas color. Use "" for a transparent image.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterizes s.
func RenderPNG(s *surface.Surface, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid PNG scale %v", r.scale)
	}

	w, h := s.Size()
	pw, ph := int(math.Ceil(w*r.scale)), int(math.Ceil(h*r.scale))
	if pw <= 0 || ph <= 0 {
		return nil, errors.New(errors.ErrCodeGeometryDegenerate, "cannot rasterize an empty %vx%v surface", w, h)
	}

	dc := gg.NewContext(pw, ph)
	if r.background != "" {
		setColor(dc, r.background, 1)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	for _, e := range s.Elements() {
		if err := drawElement(dc, e); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawElement(dc *gg.Context, e *surface.Element) error {
	st := e.Style
	if st.Opacity <= 0 {
		return nil
	}
	switch e.Shape {
	case surface.ShapeLine:
		dc.DrawLine(e.X, e.Y, e.X2, e.Y2)
		stroke(dc, st)
	case surface.ShapeRect:
		dc.DrawRectangle(e.X, e.Y, e.W, e.H)
		fillAndStroke(dc, st)
	case surface.ShapeCircle:
		dc.DrawCircle(e.X, e.Y, e.R)
		fillAndStroke(dc, st)
	case surface.ShapePath:
		for i, p := range e.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		stroke(dc, st)
	case surface.ShapeText:
		face, err := fonts.Face(st.FontSize, st.Bold)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		dc.Push()
		dc.SetFontFace(face)
		fill := st.Fill
		if fill == "" {
			fill = "#000"
		}
		setColor(dc, fill, st.Opacity)
		if e.Rotate != 0 {
			dc.RotateAbout(gg.Radians(e.Rotate), e.X, e.Y)
		}
		dc.DrawStringAnchored(e.Text, e.X, e.Y, anchorX(e.Anchor), 0)
		dc.Pop()
	}
	dc.ClearPath()
	return nil
}

func fillAndStroke(dc *gg.Context, st surface.Style) {
	if st.Fill != "" {
		setColor(dc, st.Fill, st.Opacity)
		if st.Stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	stroke(dc, st)
}

func stroke(dc *gg.Context, st surface.Style) {
	if st.Stroke == "" {
		dc.ClearPath()
		return
	}
	setColor(dc, st.Stroke, st.Opacity*st.StrokeOpacity)
	dc.SetLineWidth(max(st.StrokeWidth, 1))
	dc.SetDash(parseDash(st.Dash)...)
	dc.Stroke()
	dc.SetDash()
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		c = colorful.Color{}
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}

// normalizeHex expands #rgb to #rrggbb.
func normalizeHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

func parseDash(s string) []float64 {
	var out []float64
	for _, f := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		if v, err := strconv.ParseFloat(f, 64); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func anchorX(anchor string) float64 {
	switch anchor {
	case surface.AnchorMiddle:
		return 0.5
	case surface.AnchorEnd:
		return 1
	}
	return 0
}
