// Package pipeline provides the batch load → render → sink pipeline for
// chartkit.
//
// This package implements the complete pipeline used by the CLI commands
// that produce files. By centralizing it, every entry point loads, renders
// and serializes a chart the same way and shares one artifact cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a CSV or XLSX source through the chart's field schema
//  2. Render: Draw the chart on a surface at the requested viewport size
//  3. Sink: Serialize the surface (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.FromConfig(cfg.Charts["gdp"])
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	ds, err := runner.Load(ctx, opts)
//
//	// Render an existing dataset
//	artifacts, err := runner.Render(ctx, ds, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/config"
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
type Options struct {
	// Chart is the chart definition: kind, source, fields and layout overrides.
	Chart config.Chart `json:"chart"`

	// Viewport
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Selection lists the visible series of a line chart. SelectAll selects
	// every category in the dataset and wins over Selection.
	Selection []string `json:"selection,omitempty"`
	SelectAll bool     `json:"select_all,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Title       string   `json:"title,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Loader dataset.Loader `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// FromConfig returns options for a configured chart, with its selection and
// width carried over.
func FromConfig(ch config.Chart) Options {
	return Options{
		Chart:     ch,
		Width:     ch.Width,
		Selection: slices.Clone(ch.Select),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded dataset.
	Dataset *dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Pass describes the render pass the artifacts were produced from. It is
	// zero when every artifact came from the cache.
	Pass render.Pass

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Dropped    int
	Filtered   int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the dataset came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a chart kind is valid.
func ValidateKind(kind string) error {
	_, err := render.ParseKind(kind)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Chart.Source == "" && o.Loader == nil {
		return fmt.Errorf("source is required")
	}
	if err := o.Chart.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateKind(o.Chart.Kind); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("viewport cannot be negative: %vx%v", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return fmt.Errorf("scale cannot be negative: %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// DatasetKeyOpts returns cache key options for dataset loading.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	opts := cache.DatasetKeyOpts{Shape: o.Chart.Kind, Fields: o.Chart.Fields}
	for _, f := range o.Chart.Filters {
		opts.Filters = append(opts.Filters, fmt.Sprintf("%s:%s:%s", f.Field, bound(f.Min), bound(f.Max)))
	}
	if o.Chart.Sheet != "" {
		opts.Filters = append(opts.Filters, "sheet:"+o.Chart.Sheet)
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	cfg, _ := cache.HashJSON(struct {
		Chart       config.Chart
		Interactive bool
		Title       string
		SelectAll   bool
	}{o.Chart, o.Interactive, o.Title, o.SelectAll})
	return cache.ArtifactKeyOpts{
		Kind:      o.Chart.Kind,
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Selection: o.Selection,
		Config:    cfg,
		Scale:     o.Scale,
	}
}

func bound(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
