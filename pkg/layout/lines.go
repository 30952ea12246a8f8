package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// Vertex is one point of a series in pixels, with its source record.
type Vertex struct {
	X, Y   float64
	Record dataset.Record
}

// Series is the polyline for one category, sorted by X.
type Series struct {
	Key    string
	Points []Vertex
}

// Last returns the rightmost vertex. It anchors the series label.
func (s Series) Last() Vertex {
	return s.Points[len(s.Points)-1]
}

// At returns the vertex whose record X equals x exactly.
func (s Series) At(x float64) (Vertex, bool) {
	i, ok := slices.BinarySearchFunc(s.Points, x, func(v Vertex, x float64) int {
		return cmp.Compare(v.Record.X, x)
	})
	if !ok {
		return Vertex{}, false
	}
	return s.Points[i], true
}

// Path returns the vertices as surface points.
func (s Series) Path() []surface.Point {
	out := make([]surface.Point, len(s.Points))
	for i, v := range s.Points {
		out[i] = surface.Point{X: v.X, Y: v.Y}
	}
	return out
}

// Lines builds one series per key in keys, in that order. Keys with no
// records in ds are dropped.
func Lines(ds *dataset.Dataset, keys []string, x, y scale.Linear) []Series {
	if ds.Empty() || len(keys) == 0 {
		return nil
	}
	byKey := make(map[string][]dataset.Record)
	for _, p := range ds.PartitionBy(func(r dataset.Record) string { return r.Category }) {
		byKey[p.Key] = p.Records
	}

	var out []Series
	for _, k := range keys {
		recs := byKey[k]
		if len(recs) == 0 {
			continue
		}
		recs = slices.Clone(recs)
		slices.SortStableFunc(recs, func(a, b dataset.Record) int {
			return cmp.Compare(a.X, b.X)
		})
		s := Series{Key: k, Points: make([]Vertex, len(recs))}
		for i, r := range recs {
			s.Points[i] = Vertex{X: x.Map(r.X), Y: y.Map(r.Y), Record: r}
		}
		out = append(out, s)
	}
	return out
}
