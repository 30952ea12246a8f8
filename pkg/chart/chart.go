package chart

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/interact"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/selection"
	"github.com/matzehuels/chartkit/pkg/surface"
	"github.com/matzehuels/chartkit/pkg/viewport"
)

// ErrStale is returned by Load when a newer load was started before this one
// resolved. The result is discarded.
var ErrStale = errors.New("stale load discarded")

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTooltips sets the tooltip registry. The default is the process-wide
// [surface.SharedTooltip].
func WithTooltips(r *surface.TooltipRegistry) Option {
	return func(c *Chart) {
		if r != nil {
			c.tips = r
		}
	}
}

// WithSelection sets the initial selection.
func WithSelection(s selection.Set) Option {
	return func(c *Chart) { c.sel = s }
}

// WithID overrides the generated instance id.
func WithID(id string) Option {
	return func(c *Chart) {
		if id != "" {
			c.id = id
		}
	}
}

// Chart is one interactive chart instance.
type Chart struct {
	mu sync.Mutex

	id     string
	r      render.Renderer
	s      *surface.Surface
	ctl    *interact.Controller
	tips   *surface.TooltipRegistry
	logger *log.Logger

	ds   *dataset.Dataset
	vp   viewport.Size
	sel  selection.Set
	pass render.Pass

	passes  int
	loadSeq uint64
	closed  bool
}

// New creates a chart drawn by r, mounts the shared tooltip, and performs the
// initial empty-state render.
func New(r render.Renderer, opts ...Option) *Chart {
	c := &Chart{
		id:     uuid.NewString(),
		r:      r,
		s:      surface.New(),
		tips:   surface.SharedTooltip(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctl = interact.New(c.id, c.tips)
	c.tips.Mount()
	c.render()
	return c
}

// ID returns the instance id. It is also the tooltip owner id.
func (c *Chart) ID() string { return c.id }

// Kind returns the renderer's chart kind.
func (c *Chart) Kind() render.Kind { return c.r.Kind() }

// SetDataset replaces the dataset and reports whether a render happened.
func (c *Chart) SetDataset(ds *dataset.Dataset) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setDataset(ds)
}

func (c *Chart) setDataset(ds *dataset.Dataset) bool {
	if c.closed || ds == c.ds {
		return false
	}
	c.ds = ds
	c.render()
	return true
}

// Resize sets the viewport size and reports whether a render happened.
// Invalid sizes are ignored.
func (c *Chart) Resize(size viewport.Size) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !size.Valid() || size == c.vp {
		return false
	}
	c.vp = size
	c.render()
	return true
}

// SetSelection replaces the selection and reports whether a render happened.
func (c *Chart) SetSelection(sel selection.Set) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || sel.Equal(c.sel) {
		return false
	}
	c.sel = sel
	c.render()
	return true
}

// Toggle flips key in the selection and re-renders.
func (c *Chart) Toggle(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.sel = c.sel.Toggle(key)
	c.render()
	return true
}

// Selection returns the current selection.
func (c *Chart) Selection() selection.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Viewport returns the current viewport size.
func (c *Chart) Viewport() viewport.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// Dataset returns the current dataset, or nil.
func (c *Chart) Dataset() *dataset.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ds
}

// Load fetches a dataset from source and installs it unless a newer load
// was started in the meantime, in which case it returns ErrStale. A load
// error is logged, clears the dataset, and is returned.
func (c *Chart) Load(ctx context.Context, loader dataset.Loader, source string) error {
	c.mu.Lock()
	c.loadSeq++
	token := c.loadSeq
	c.mu.Unlock()

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	ds, err := loader.Load(ctx, source)
	hooks.OnLoadComplete(ctx, source, ds.Len(), dropped(ds), time.Since(start), err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.loadSeq || c.closed {
		c.logger.Debug("discarding stale load", "chart", c.id, "source", source, "token", token)
		return ErrStale
	}
	if err != nil {
		c.logger.Error("load failed", "chart", c.id, "source", source, "err", err)
		c.setDataset(nil)
		return err
	}
	if ds.Dropped > 0 {
		c.logger.Debug("dropped unparseable rows", "source", source, "dropped", ds.Dropped)
	}
	c.setDataset(ds)
	return nil
}

func dropped(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Dropped
}

// Observe returns a debounced viewport observer that resizes the chart.
// The caller owns the observer and must Stop it.
func (c *Chart) Observe(window time.Duration, opts ...viewport.Option) *viewport.Observer {
	return viewport.NewObserver(window, func(s viewport.Size) { c.Resize(s) }, opts...)
}

// Read calls fn with the surface and the last pass while holding the lock.
// fn must not retain the surface or call back into the chart.
func (c *Chart) Read(fn func(s *surface.Surface, p render.Pass)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.s, c.pass)
}

// Pass returns the last render pass.
func (c *Chart) Pass() render.Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pass
}

// Passes returns the number of render passes performed.
func (c *Chart) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Snapshot returns a copy of the rendered elements.
func (c *Chart) Snapshot() []surface.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Snapshot()
}

// PointerAt forwards a pointer position to the interaction controller.
func (c *Chart) PointerAt(p surface.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.ctl.PointerAt(p)
	}
}

// Move forwards pointer motion to the interaction controller.
func (c *Chart) Move(p surface.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.ctl.Move(p)
	}
}

// Leave forwards a pointer leave to the interaction controller.
func (c *Chart) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.ctl.Leave()
	}
}

// Highlight returns the highlighted key, if any.
func (c *Chart) Highlight() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctl.Highlight()
}

// Tooltip returns the tooltip state as seen by this chart.
func (c *Chart) Tooltip() surface.TooltipState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctl.Tooltip()
}

// Close unmounts the chart from the tooltip registry. Further calls are
// no-ops.
func (c *Chart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.loadSeq++
	c.tips.Unmount(c.id)
}

func (c *Chart) render() {
	start := time.Now()
	c.pass = c.r.Render(c.s, render.Input{Dataset: c.ds, Viewport: c.vp, Selection: c.sel})
	c.ctl.Attach(c.s, c.pass)
	c.passes++

	d := time.Since(start)
	c.logger.Debug("render", "chart", c.id, "kind", c.pass.Kind, "elements", c.s.Len(), "ready", c.pass.Ready, "took", d)
	observability.Pipeline().OnRender(context.Background(), string(c.pass.Kind), c.s.Len(), c.pass.Ready, d)
}
