package sink

import (
	"encoding/json"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	kind    string
	source  string
	compact bool
}

// WithJSONKind records the chart kind in the output.
func WithJSONKind(kind string) JSONOption { return func(r *jsonRenderer) { r.kind = kind } }

// WithJSONSource records the dataset source in the output.
func WithJSONSource(src string) JSONOption { return func(r *jsonRenderer) { r.source = src } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Kind     string            `json:"kind,omitempty"`
	Source   string            `json:"source,omitempty"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Elements []surface.Element `json:"elements"`
}

// RenderJSON exports the surface as a JSON document: size plus every element
// with its current style. It does not modify s.
func RenderJSON(s *surface.Surface, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Size()
	out := jsonOutput{
		Kind:     r.kind,
		Source:   r.source,
		Width:    w,
		Height:   h,
		Elements: s.Snapshot(),
	}

	var (
		b   []byte
		err error
	)
	if r.compact {
		b, err = json.Marshal(out)
	} else {
		b, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal surface")
	}
	return b, nil
}
