package scale

// Ordinal assigns palette colors to category keys in first-seen order.
// Keys beyond the palette length wrap around.
//
// An Ordinal is not safe for concurrent use; renderers build a fresh one per
// pass.
type Ordinal struct {
	palette []string
	index   map[string]int
	keys    []string
}

// NewOrdinal builds an ordinal scale over palette, pre-seeding the domain
// with keys in order. Duplicate keys keep their first slot.
func NewOrdinal(palette []string, domain ...string) *Ordinal {
	if len(palette) == 0 {
		palette = Category10
	}
	o := &Ordinal{palette: palette, index: make(map[string]int, len(domain))}
	for _, k := range domain {
		o.add(k)
	}
	return o
}

// Color returns the color for key. Keys not yet in the domain are appended.
func (o *Ordinal) Color(key string) string {
	return o.palette[o.add(key)%len(o.palette)]
}

// Domain returns the keys in assignment order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.keys...)
}

func (o *Ordinal) add(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}
	i := len(o.keys)
	o.index[key] = i
	o.keys = append(o.keys, key)
	return i
}
