package surface

// Surface is the drawing surface of one chart instance.
//
// A Surface is not safe for concurrent use. The owning chart serializes all
// access.
type Surface struct {
	width, height float64
	elems         []*Element
}

// New returns an empty surface with zero size.
func New() *Surface {
	return &Surface{}
}

// Clear removes every element. Size is kept.
func (s *Surface) Clear() {
	for i := range s.elems {
		s.elems[i] = nil
	}
	s.elems = s.elems[:0]
}

// Resize sets the surface size in pixels.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height float64) {
	return s.width, s.height
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() Rect { return Rect{0, 0, s.width, s.height} }

// Add appends e and returns the stored element. The element's current style
// becomes its base style and it is assigned the next ID.
func (s *Surface) Add(e Element) *Element {
	e.ID = len(s.elems)
	e.Base = e.Style
	if e.Points != nil {
		e.Points = append([]Point(nil), e.Points...)
	}
	p := &e
	s.elems = append(s.elems, p)
	return p
}

// Len returns the number of elements.
func (s *Surface) Len() int { return len(s.elems) }

// Elements returns the elements in paint order. The slice is shared with the
// surface and is invalidated by the next Clear.
func (s *Surface) Elements() []*Element { return s.elems }

// Select returns the elements with the given class, in paint order.
func (s *Surface) Select(class string) []*Element {
	var out []*Element
	for _, e := range s.elems {
		if e.Class == class {
			out = append(out, e)
		}
	}
	return out
}

// Hit returns the topmost interactive element containing p, or nil.
func (s *Surface) Hit(p Point) *Element {
	if !p.Finite() {
		return nil
	}
	for i := len(s.elems) - 1; i >= 0; i-- {
		e := s.elems[i]
		if e.Interactive && e.Contains(p) {
			return e
		}
	}
	return nil
}

// RestoreAll resets every element to its base style.
func (s *Surface) RestoreAll() {
	for _, e := range s.elems {
		e.Restore()
	}
}

// Snapshot returns a deep copy of the elements, suitable for comparing two
// render passes.
func (s *Surface) Snapshot() []Element {
	out := make([]Element, len(s.elems))
	for i, e := range s.elems {
		out[i] = *e
		if e.Points != nil {
			out[i].Points = append([]Point(nil), e.Points...)
		}
	}
	return out
}
