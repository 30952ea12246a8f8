package dataset

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Record is one input row after field extraction. Which fields are set
// depends on the dataset's [Shape].
type Record struct {
	Category string  `json:"category"`
	Group    string  `json:"group,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size,omitempty"`
}

// Value returns the numeric field f, or 0 for non-numeric fields.
func (r Record) Value(f Field) float64 {
	switch f {
	case FieldX:
		return r.X
	case FieldY:
		return r.Y
	case FieldSize:
		return r.Size
	}
	return 0
}

func (r *Record) set(f Field, text string) error {
	switch f {
	case FieldCategory:
		if text == "" {
			return errors.New(errors.ErrCodeRecordParse, "field %q is empty", f)
		}
		r.Category = text
	case FieldGroup:
		if text == "" {
			return errors.New(errors.ErrCodeRecordParse, "field %q is empty", f)
		}
		r.Group = text
	default:
		v, err := parseNumber(f, text)
		if err != nil {
			return err
		}
		switch f {
		case FieldX:
			r.X = v
		case FieldY:
			r.Y = v
		case FieldSize:
			r.Size = v
		}
	}
	return nil
}

// valid reports whether r carries every required field of shape s.
func (r Record) valid(s Shape) bool {
	for _, f := range s.Required() {
		switch f {
		case FieldCategory:
			if r.Category == "" {
				return false
			}
		case FieldGroup:
			if r.Group == "" {
				return false
			}
		default:
			v := r.Value(f)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Dataset is an ordered, immutable sequence of records sharing one shape.
// It is replaced wholesale on reload and never mutated after construction.
type Dataset struct {
	Shape   Shape    `json:"shape"`
	Records []Record `json:"records"`
	Source  string   `json:"source,omitempty"`

	// Dropped counts rows removed because a required field failed to parse.
	Dropped int `json:"dropped,omitempty"`

	// Filtered counts rows removed by schema filters.
	Filtered int `json:"filtered,omitempty"`

	// Defaulted counts kept rows where an optional field held text that did
	// not parse. The field is left at zero.
	Defaulted int `json:"defaulted,omitempty"`
}

// New builds a dataset from records. Records missing a required field of
// shape are dropped and counted. The records slice is copied.
func New(shape Shape, records []Record) (*Dataset, error) {
	if !shape.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown dataset shape %q", shape)
	}
	ds := &Dataset{Shape: shape, Records: make([]Record, 0, len(records))}
	for _, r := range records {
		if !r.valid(shape) {
			ds.Dropped++
			continue
		}
		ds.Records = append(ds.Records, r)
	}
	return ds, nil
}

// Len returns the number of records. A nil dataset has length 0.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether d is nil or has no records.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Values returns field f of every record, in order.
func (d *Dataset) Values(f Field) []float64 {
	if d == nil {
		return nil
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Value(f)
	}
	return out
}

// Categories returns the distinct category keys in first-seen order.
func (d *Dataset) Categories() []string {
	return d.distinct(func(r Record) string { return r.Category })
}

// Groups returns the distinct group keys in first-seen order.
func (d *Dataset) Groups() []string {
	return d.distinct(func(r Record) string { return r.Group })
}

// Partition is the records sharing one key.
type Partition struct {
	Key     string
	Records []Record
}

// PartitionBy groups records by key, keeping first-seen key order and
// record order within each partition.
func (d *Dataset) PartitionBy(key func(Record) string) []Partition {
	if d == nil {
		return nil
	}
	index := make(map[string]int)
	var parts []Partition
	for _, r := range d.Records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(parts)
			index[k] = i
			parts = append(parts, Partition{Key: k})
		}
		parts[i].Records = append(parts[i].Records, r)
	}
	return parts
}

func (d *Dataset) distinct(key func(Record) string) []string {
	parts := d.PartitionBy(key)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.Key
	}
	return out
}
