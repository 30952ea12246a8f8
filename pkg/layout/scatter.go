package layout

import (
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/scale"
)

// LabelGap is the vertical gap between a bubble and its label.
const LabelGap = 5

// Scatter places every record of ds as a bubble. Entries keep dataset order,
// which is also paint order.
func Scatter(ds *dataset.Dataset, x, y scale.Linear, size scale.Sqrt) []Entry {
	if ds.Empty() {
		return nil
	}
	out := make([]Entry, 0, ds.Len())
	for _, r := range ds.Records {
		out = append(out, Entry{
			Key:      r.Category,
			Group:    r.Group,
			ColorKey: r.Group,
			X:        x.Map(r.X),
			Y:        y.Map(r.Y),
			Radius:   size.Map(r.Size),
			Record:   r,
		})
	}
	return out
}

// LabelY returns the baseline of a label drawn gap pixels above e.
func LabelY(e Entry, gap float64) float64 {
	return e.Y - e.Radius - gap
}
