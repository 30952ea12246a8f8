package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/chartkit/pkg/fonts"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/surface"
)

const interactionCSS = `
    .bubble, .legend-item, .series-label { cursor: pointer; }
    #chart-tip { pointer-events: none; font-size: 12px; }
    #chart-tip rect { fill: rgba(255, 255, 255, 0.9); stroke: #ccc; }`

const interactionJS = `
    const q = s => Array.from(document.querySelectorAll(s));
    const tip = document.getElementById('chart-tip');
    const tipBox = tip.querySelector('rect');
    const tipText = tip.querySelector('text');
    const guide = document.querySelector('.guide');
    const svgRoot = document.querySelector('svg');
    function showTip(lines, x, y) {
      tipText.textContent = '';
      lines.forEach((l, i) => {
        const t = document.createElementNS('http://www.w3.org/2000/svg', 'tspan');
        t.setAttribute('x', 10);
        t.setAttribute('dy', i === 0 ? '1.2em' : '1.3em');
        if (i === 0) t.setAttribute('font-weight', 'bold');
        if (l.color) t.setAttribute('fill', l.color);
        t.textContent = l.text;
        tipText.appendChild(t);
      });
      const b = tipText.getBBox();
      tipBox.setAttribute('width', b.width + 20);
      tipBox.setAttribute('height', b.height + 12);
      tip.setAttribute('transform', 'translate(' + x + ',' + y + ')');
      tip.setAttribute('visibility', 'visible');
    }
    function hideTip() {
      tip.setAttribute('visibility', 'hidden');
      if (guide) guide.setAttribute('opacity', 0);
    }
    function local(evt) {
      const pt = svgRoot.createSVGPoint();
      pt.x = evt.clientX; pt.y = evt.clientY;
      return pt.matrixTransform(svgRoot.getScreenCTM().inverse());
    }
    function highlightGroup(group) {
      q('.bubble').forEach(b => {
        const on = b.dataset.group === group;
        b.setAttribute('opacity', on ? 1 : 0.1);
        if (on) { b.setAttribute('stroke', '#333'); b.setAttribute('stroke-width', 1.5); }
      });
    }
    function resetBubbles() {
      q('.bubble').forEach(b => {
        b.setAttribute('opacity', b.dataset.opacity);
        b.removeAttribute('stroke');
        b.removeAttribute('stroke-width');
      });
    }
    q('.bubble').forEach(el => {
      el.addEventListener('mouseenter', evt => {
        resetBubbles();
        highlightGroup(el.dataset.group);
        const c = JSON.parse(el.dataset.tip || 'null');
        if (c) {
          const p = local(evt);
          showTip([{text: c.title}].concat(c.rows.map(r => ({text: r.label + ': ' + r.value}))), p.x + 10, p.y - 20);
        }
      });
      el.addEventListener('mousemove', evt => {
        const p = local(evt);
        tip.setAttribute('transform', 'translate(' + (p.x + 10) + ',' + (p.y - 20) + ')');
      });
      el.addEventListener('mouseleave', () => { resetBubbles(); hideTip(); });
    });
    q('.legend-item').forEach(el => {
      el.addEventListener('mouseenter', () => { resetBubbles(); highlightGroup(el.dataset.group); });
      el.addEventListener('mouseleave', resetBubbles);
    });
    function highlightSeries(key) {
      q('.series-line').forEach(l => l.setAttribute('stroke-opacity', l.dataset.key === key ? 1 : 0.1));
      q('.series-label').forEach(l => l.setAttribute('opacity', l.dataset.key === key ? 1 : 0.1));
    }
    function resetSeries() {
      q('.series-line').forEach(l => l.setAttribute('stroke-opacity', 1));
      q('.series-label').forEach(l => l.setAttribute('opacity', 1));
    }
    q('.series-label').forEach(el => {
      el.addEventListener('mouseenter', () => highlightSeries(el.dataset.key));
      el.addEventListener('mouseleave', resetSeries);
    });
    const data = typeof chartData === 'undefined' ? null : chartData;
    const tracker = document.querySelector('.tracker');
    if (data && tracker) {
      tracker.addEventListener('mousemove', evt => {
        const p = local(evt);
        const t = (p.x - data.range[0]) / (data.range[1] - data.range[0]);
        const x = Math.round(data.domain[0] + t * (data.domain[1] - data.domain[0]));
        const rows = [];
        data.series.forEach(s => {
          const i = s.x.indexOf(x);
          if (i >= 0) rows.push({key: s.key, value: s.y[i], color: s.color});
        });
        if (rows.length === 0) { hideTip(); return; }
        rows.sort((a, b) => b.value - a.value);
        showTip([{text: String(x)}].concat(rows.map(r => ({text: '● ' + r.key + ': ' + r.value.toFixed(2) + '%', color: r.color}))), p.x + 10, p.y - 10);
        guide.setAttribute('x1', p.x);
        guide.setAttribute('x2', p.x);
        guide.setAttribute('opacity', 1);
      });
      tracker.addEventListener('mouseleave', hideTip);
    }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	pass        *render.Pass
	background  string
	title       string
}

// WithInteraction embeds the hover script and a hidden tooltip.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithPass attaches the render pass so the script can build tooltips.
func WithPass(p render.Pass) SVGOption { return func(r *svgRenderer) { r.pass = &p } }

// WithBackground fills the canvas with a color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG serializes s as a standalone SVG document. Coordinates are
// rounded to whole pixels, except path vertices which keep two decimals.
func RenderSVG(s *surface.Surface, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Size()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(w), px(h),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, px(w), px(h)),
		fmt.Sprintf(`font-family="%s"`, html.EscapeString(fonts.FontFamily)))

	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.background != "" {
		canvas.Rect(0, 0, px(w), px(h), attr("fill", r.background))
	}
	for _, e := range s.Elements() {
		r.element(canvas, e)
	}
	if r.interactive {
		r.renderInteraction(canvas)
	}
	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) element(canvas *svg.SVG, e *surface.Element) {
	attrs := r.attrs(e)
	switch e.Shape {
	case surface.ShapeLine:
		canvas.Line(px(e.X), px(e.Y), px(e.X2), px(e.Y2), attrs...)
	case surface.ShapeRect:
		x, y, w, h := e.X, e.Y, e.W, e.H
		if w < 0 {
			x, w = x+w, -w
		}
		if h < 0 {
			y, h = y+h, -h
		}
		canvas.Rect(px(x), px(y), px(w), px(h), attrs...)
	case surface.ShapeCircle:
		canvas.Circle(px(e.X), px(e.Y), px(e.R), attrs...)
	case surface.ShapePath:
		if len(e.Points) == 0 {
			return
		}
		canvas.Path(pathData(e.Points), attrs...)
	case surface.ShapeText:
		if e.Rotate != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%s %d %d)"`, num(e.Rotate), px(e.X), px(e.Y)))
		}
		canvas.Text(px(e.X), px(e.Y), e.Text, attrs...)
	}
}

func (r *svgRenderer) attrs(e *surface.Element) []string {
	st := e.Style
	out := []string{attr("class", e.Class)}
	if e.Key != "" {
		out = append(out, attr("data-key", e.Key))
	}
	if e.Group != "" {
		out = append(out, attr("data-group", e.Group))
	}

	switch {
	case st.Fill != "":
		out = append(out, attr("fill", st.Fill))
	case e.Shape != surface.ShapeText:
		out = append(out, `fill="none"`)
	}
	if st.Stroke != "" {
		out = append(out, attr("stroke", st.Stroke))
		if st.StrokeWidth > 0 {
			out = append(out, attr("stroke-width", num(st.StrokeWidth)))
		}
		if st.Dash != "" {
			out = append(out, attr("stroke-dasharray", st.Dash))
		}
		if st.StrokeOpacity != 1 {
			out = append(out, attr("stroke-opacity", num(st.StrokeOpacity)))
		}
	}
	if st.Opacity != 1 {
		out = append(out, attr("opacity", num(st.Opacity)))
	}
	if e.Shape == surface.ShapeText {
		if st.FontSize > 0 {
			out = append(out, attr("font-size", num(st.FontSize)+"px"))
		}
		if st.Bold {
			out = append(out, `font-weight="bold"`)
		}
		if e.Anchor != "" && e.Anchor != surface.AnchorStart {
			out = append(out, attr("text-anchor", e.Anchor))
		}
	}
	if e.Class == render.ClassTracker {
		out = append(out, `pointer-events="all"`)
	}

	if r.interactive && e.Class == render.ClassBubble {
		out = append(out, attr("data-opacity", num(e.Base.Opacity)))
		if tip, ok := r.bubbleTip(e); ok {
			out = append(out, attr("data-tip", tip))
		}
	}
	return out
}

type tipJSON struct {
	Title string   `json:"title"`
	Rows  []rowObj `json:"rows"`
}

type rowObj struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (r *svgRenderer) bubbleTip(e *surface.Element) (string, bool) {
	if r.pass == nil || e.Datum < 0 || e.Datum >= len(r.pass.Entries) {
		return "", false
	}
	c := render.BubbleTooltip(r.pass.Entries[e.Datum].Record, r.pass.TipLabels)
	out := tipJSON{Title: c.Title}
	for _, row := range c.Rows {
		out.Rows = append(out.Rows, rowObj{Label: row.Label, Value: row.Value})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", false
	}
	return string(b), true
}

type seriesJSON struct {
	Key   string    `json:"key"`
	Color string    `json:"color"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

type lineDataJSON struct {
	Domain [2]float64   `json:"domain"`
	Range  [2]float64   `json:"range"`
	Series []seriesJSON `json:"series"`
}

func (r *svgRenderer) renderInteraction(canvas *svg.SVG) {
	if p := r.pass; p != nil && p.Kind == render.KindLine && p.HasTracker() {
		d := p.X.Domain()
		r0, r1 := p.X.Range()
		data := lineDataJSON{Domain: [2]float64{d.Min, d.Max}, Range: [2]float64{r0, r1}}
		for _, s := range p.Series {
			sj := seriesJSON{Key: s.Key, Color: p.Colors.Color(s.Key)}
			for _, v := range s.Points {
				sj.X = append(sj.X, v.Record.X)
				sj.Y = append(sj.Y, v.Record.Y)
			}
			data.Series = append(data.Series, sj)
		}
		if b, err := json.Marshal(data); err == nil {
			canvas.Script("text/javascript", "var chartData = "+string(b)+";")
		}
	}
	canvas.Group(`id="chart-tip"`, `visibility="hidden"`)
	canvas.Rect(0, 0, 0, 0, `rx="5"`)
	canvas.Text(0, 0, "")
	canvas.Gend()
	canvas.Style("text/css", interactionCSS)
	canvas.Script("text/javascript", interactionJS)
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pathData(pts []surface.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', 2, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', 2, 64))
	}
	return b.String()
}
