package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Shape is the field set shared by every record of a dataset.
type Shape string

// Supported shapes.
const (
	ShapeSeries Shape = "series"
	ShapeBubble Shape = "bubble"
	ShapeTile   Shape = "tile"
)

// Field names a record field.
type Field string

// Record fields.
const (
	FieldCategory Field = "category"
	FieldGroup    Field = "group"
	FieldX        Field = "x"
	FieldY        Field = "y"
	FieldSize     Field = "size"
)

// Numeric reports whether the field holds a number.
func (f Field) Numeric() bool {
	return f == FieldX || f == FieldY || f == FieldSize
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	switch s {
	case ShapeSeries, ShapeBubble, ShapeTile:
		return true
	}
	return false
}

// Required returns the fields every record of shape s must carry.
func (s Shape) Required() []Field {
	switch s {
	case ShapeSeries:
		return []Field{FieldCategory, FieldX, FieldY}
	case ShapeBubble:
		return []Field{FieldCategory, FieldGroup, FieldX, FieldY, FieldSize}
	case ShapeTile:
		return []Field{FieldCategory, FieldGroup, FieldY}
	}
	return nil
}

// Optional returns fields that are extracted when configured but never
// cause a row to be dropped.
func (s Shape) Optional() []Field {
	if s == ShapeTile {
		return []Field{FieldSize}
	}
	return nil
}

// Filter keeps records whose numeric field lies within [Min, Max]. A nil
// bound is open.
type Filter struct {
	Field Field
	Min   *float64
	Max   *float64
}

// Keep reports whether r passes the filter.
func (f Filter) Keep(r Record) bool {
	v := r.Value(f.Field)
	if f.Min != nil && v < *f.Min {
		return false
	}
	if f.Max != nil && v > *f.Max {
		return false
	}
	return true
}

// Schema declares how raw columns become record fields.
type Schema struct {
	Shape   Shape
	Fields  map[Field]string
	Filters []Filter
}

// Validate checks that the shape is known and every required field is mapped
// to a usable column name.
func (s Schema) Validate() error {
	if !s.Shape.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown dataset shape %q", s.Shape)
	}
	for _, f := range s.Shape.Required() {
		col, ok := s.Fields[f]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "%s dataset requires a column for field %q", s.Shape, f)
		}
		if err := errors.ValidateColumnName(col); err != nil {
			return err
		}
	}
	for _, flt := range s.Filters {
		if !flt.Field.Numeric() {
			return errors.New(errors.ErrCodeInvalidConfig, "filter field %q is not numeric", flt.Field)
		}
	}
	return nil
}

// columns resolves field names to header indexes.
type columns map[Field]int

func (s Schema) resolve(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cols := make(columns)
	for _, f := range s.Shape.Required() {
		i, ok := index[s.Fields[f]]
		if !ok {
			return nil, errors.New(errors.ErrCodeLoad, "missing column %q for field %q", s.Fields[f], f)
		}
		cols[f] = i
	}
	for _, f := range s.Shape.Optional() {
		if name, ok := s.Fields[f]; ok {
			if i, ok := index[name]; ok {
				cols[f] = i
			}
		}
	}
	return cols, nil
}

// parse extracts one record. A required field that fails carries
// errors.ErrCodeRecordParse. An optional field that is present but
// unparseable stays zero and is reported through defaulted.
func (s Schema) parse(cols columns, row []string) (r Record, defaulted bool, err error) {
	for _, f := range s.Shape.Required() {
		if err := r.set(f, cell(row, cols[f])); err != nil {
			return Record{}, false, err
		}
	}
	for _, f := range s.Shape.Optional() {
		i, ok := cols[f]
		if !ok {
			continue
		}
		if text := cell(row, i); text != "" && r.set(f, text) != nil {
			defaulted = true
		}
	}
	return r, defaulted, nil
}

func (s Schema) keep(r Record) bool {
	for _, f := range s.Filters {
		if !f.Keep(r) {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseNumber(field Field, text string) (float64, error) {
	if text == "" {
		return 0, errors.New(errors.ErrCodeRecordParse, "field %q is empty", field)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeRecordParse, err, "field %q", field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeRecordParse, "field %q is not finite: %s", field, text)
	}
	return v, nil
}
