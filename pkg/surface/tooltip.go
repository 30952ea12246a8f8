package surface

import "sync"

// TooltipRow is one line of tooltip content.
type TooltipRow struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
	Color string `json:"color,omitempty"`
}

// TooltipContent is the structured summary shown in the tooltip.
type TooltipContent struct {
	Title string       `json:"title"`
	Rows  []TooltipRow `json:"rows,omitempty"`
}

// TooltipState is a read-only snapshot of the tooltip.
type TooltipState struct {
	Visible bool           `json:"visible"`
	Content TooltipContent `json:"content"`
	Anchor  Point          `json:"anchor"`
	Owner   string         `json:"owner,omitempty"`
}

// TooltipRegistry owns the free-floating tooltip shared by all charts.
//
// Charts Mount on creation and Unmount on close. The tooltip exists while at
// least one chart is mounted. Only one owner can hold it visible; Show from a
// second owner takes it over, and Hide is ignored unless it comes from the
// current owner.
type TooltipRegistry struct {
	mu     sync.Mutex
	mounts int
	state  *TooltipState
}

var shared TooltipRegistry

// SharedTooltip returns the process-wide tooltip registry.
func SharedTooltip() *TooltipRegistry { return &shared }

// NewTooltipRegistry returns an isolated registry, mainly for tests.
func NewTooltipRegistry() *TooltipRegistry { return &TooltipRegistry{} }

// Mount registers a chart. The first mount creates the hidden tooltip.
func (r *TooltipRegistry) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts++
	if r.state == nil {
		r.state = &TooltipState{}
	}
}

// Unmount releases a chart's mount. If owner holds the tooltip visible it is
// hidden first. The last unmount tears the tooltip down.
func (r *TooltipRegistry) Unmount(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mounts == 0 {
		return
	}
	if r.state != nil && r.state.Owner == owner {
		*r.state = TooltipState{}
	}
	r.mounts--
	if r.mounts == 0 {
		r.state = nil
	}
}

// Show makes the tooltip visible for owner with the given content and
// anchor. It reports false if no chart is mounted.
func (r *TooltipRegistry) Show(owner string, c TooltipContent, anchor Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return false
	}
	*r.state = TooltipState{Visible: true, Content: c, Anchor: anchor, Owner: owner}
	return true
}

// Move repositions the tooltip if owner currently holds it visible.
func (r *TooltipRegistry) Move(owner string, anchor Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != nil && r.state.Visible && r.state.Owner == owner {
		r.state.Anchor = anchor
	}
}

// Hide hides the tooltip if owner currently holds it.
func (r *TooltipRegistry) Hide(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != nil && r.state.Owner == owner {
		*r.state = TooltipState{}
	}
}

// State returns a snapshot of the tooltip and whether it currently exists.
func (r *TooltipRegistry) State() (TooltipState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return TooltipState{}, false
	}
	st := *r.state
	st.Content.Rows = append([]TooltipRow(nil), st.Content.Rows...)
	return st, true
}

// Mounted returns the number of mounted charts.
func (r *TooltipRegistry) Mounted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounts
}
