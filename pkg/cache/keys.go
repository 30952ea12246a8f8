package cache

import (
	"fmt"
	"sort"
)

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey identifies a parsed dataset by source and schema.
	DatasetKey(source string, opts DatasetKeyOpts) string

	// ArtifactKey identifies a rendered artifact by dataset hash and render options.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DatasetKeyOpts contains the schema options that affect parsing.
type DatasetKeyOpts struct {
	Shape   string            `json:"shape"`
	Fields  map[string]string `json:"fields,omitempty"`
	Filters []string          `json:"filters,omitempty"`
	ModTime int64             `json:"mod_time,omitempty"`
}

// ArtifactKeyOpts contains the render options that affect output bytes.
type ArtifactKeyOpts struct {
	Kind      string   `json:"kind"`
	Format    string   `json:"format"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Selection []string `json:"selection,omitempty"`
	Config    string   `json:"config,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey generates a key for dataset caching.
func (DefaultKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return hashKey(fmt.Sprintf("dataset:%s", opts.Shape), source, opts)
}

// ArtifactKey generates a key for artifact caching.
// Selection order does not affect the key.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	if len(opts.Selection) > 0 {
		sel := append([]string(nil), opts.Selection...)
		sort.Strings(sel)
		opts.Selection = sel
	}
	return hashKey(fmt.Sprintf("artifact:%s:%s", opts.Kind, opts.Format), datasetHash, opts)
}

var _ Keyer = DefaultKeyer{}
