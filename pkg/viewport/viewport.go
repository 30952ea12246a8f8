// Package viewport tracks a chart container's pixel size.
//
// Containers report raw sizes at high frequency while the user drags a window
// edge. An [Observer] collapses each burst into a single update: every raw
// size restarts a trailing deadline, and when the deadline expires the latest
// size is emitted once, unless it equals the last emitted size.
//
// A width of zero means the container has not been measured yet. Renderers
// treat such a viewport as not ready and draw nothing.
package viewport

import (
	"math"
	"sync"
	"time"
)

// DefaultWindow is the trailing debounce window.
const DefaultWindow = 200 * time.Millisecond

// Size is a container size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ready reports whether the container has been measured.
func (s Size) Ready() bool { return s.Width > 0 }

// Valid reports whether both dimensions are finite and non-negative.
func (s Size) Valid() bool {
	return s.Width >= 0 && s.Height >= 0 && !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Timer is the subset of *time.Timer the observer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures an Observer.
type Option func(*Observer)

// WithAfterFunc replaces the timer source, for deterministic tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *Observer) { o.after = fn }
}

// Observer debounces raw size reports into change notifications.
// It is safe for concurrent use. onChange is called without any observer
// lock held, from the timer's goroutine or from Flush.
type Observer struct {
	mu       sync.Mutex
	window   time.Duration
	onChange func(Size)
	after    AfterFunc

	timer   Timer
	gen     uint64
	pending Size
	armed   bool
	last    Size
	stopped bool
}

// NewObserver creates an observer that calls onChange at most once per quiet
// window. A non-positive window uses DefaultWindow.
func NewObserver(window time.Duration, onChange func(Size), opts ...Option) *Observer {
	if window <= 0 {
		window = DefaultWindow
	}
	o := &Observer{
		window:   window,
		onChange: onChange,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Observe records a raw size and restarts the deadline. Invalid sizes are
// ignored.
func (o *Observer) Observe(s Size) {
	if !s.Valid() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	if o.timer != nil {
		o.timer.Stop()
	}
	o.gen++
	gen := o.gen
	o.pending, o.armed = s, true
	o.timer = o.after(o.window, func() { o.fire(gen) })
}

// Flush emits the pending size immediately, if any.
func (o *Observer) Flush() {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	gen := o.gen
	o.mu.Unlock()
	o.fire(gen)
}

// Stop cancels the pending deadline. Later Observe calls are ignored.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	o.armed = false
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// Last returns the last emitted size.
func (o *Observer) Last() Size {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

func (o *Observer) fire(gen uint64) {
	o.mu.Lock()
	if gen != o.gen || !o.armed || o.stopped {
		o.mu.Unlock()
		return
	}
	o.armed = false
	s := o.pending
	if s == o.last {
		o.mu.Unlock()
		return
	}
	o.last = s
	fn := o.onChange
	o.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}
