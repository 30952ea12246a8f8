// Package selection holds the set of category keys chosen for display.
//
// The empty set means "draw no series", not "draw everything". Hosts that
// want every series pass [All] explicitly.
package selection

import "slices"

// Set is an ordered set of category keys. The zero value is the empty set.
// A Set is immutable; every operation returns a new value.
type Set struct {
	keys []string
}

// New returns a set of keys in the given order, dropping duplicates and
// empty keys.
func New(keys ...string) Set {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return Set{keys: out}
}

// All returns a set holding every available key.
func All(available []string) Set { return New(available...) }

// Keys returns the keys in selection order.
func (s Set) Keys() []string { return slices.Clone(s.keys) }

// Len returns the number of keys.
func (s Set) Len() int { return len(s.keys) }

// Empty reports whether no key is selected.
func (s Set) Empty() bool { return len(s.keys) == 0 }

// Has reports whether key is selected.
func (s Set) Has(key string) bool { return slices.Contains(s.keys, key) }

// Equal reports whether s and o select the same keys in the same order.
// Order matters because it decides series paint order.
func (s Set) Equal(o Set) bool { return slices.Equal(s.keys, o.keys) }

// Toggle returns a copy of s with key added at the end or removed.
func (s Set) Toggle(key string) Set {
	if s.Has(key) {
		return New(slices.DeleteFunc(slices.Clone(s.keys), func(k string) bool { return k == key })...)
	}
	return New(append(slices.Clone(s.keys), key)...)
}

// Intersect returns the keys of s that are also in available, keeping the
// order of s.
func (s Set) Intersect(available []string) Set {
	var out []string
	for _, k := range s.keys {
		if slices.Contains(available, k) {
			out = append(out, k)
		}
	}
	return New(out...)
}
