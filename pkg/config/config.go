// Package config loads chart definitions from a TOML file.
//
// A configuration names one or more charts, each with a kind, a data source,
// the column that feeds every record field, and optional layout overrides:
//
//	[charts.gdp]
//	kind = "line"
//	source = "data/full-gdp.csv"
//	select = ["Chile", "Peru"]
//
//	[charts.gdp.fields]
//	category = "Entity"
//	x = "Year"
//	y = "public_health_expenditure_pc_gdp"
//
//	[[charts.gdp.filters]]
//	field = "x"
//	min = 1880
//
// Unknown keys are rejected so that typos fail loudly instead of silently
// falling back to defaults.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/scale"
)

// DefaultFile is the configuration file name looked up by the CLI.
const DefaultFile = "chartkit.toml"

// Config is a parsed configuration file.
type Config struct {
	Charts map[string]Chart `toml:"charts"`
	Cache  Cache            `toml:"cache"`
}

// Chart configures one chart.
type Chart struct {
	Kind   string  `toml:"kind"`
	Source string  `toml:"source"`
	Sheet  string  `toml:"sheet,omitempty"`
	Width  float64 `toml:"width,omitempty"`
	Height float64 `toml:"height,omitempty"`

	Margin   *layout.Margin   `toml:"margin,omitempty"`
	Fallback *render.Fallback `toml:"fallback,omitempty"`

	Palette string   `toml:"palette,omitempty"`
	Groups  []string `toml:"groups,omitempty"`
	XTitle  string   `toml:"x_title,omitempty"`
	YTitle  string   `toml:"y_title,omitempty"`
	Ticks   int      `toml:"ticks,omitempty"`
	Select  []string `toml:"select,omitempty"`

	Fields  map[string]string `toml:"fields"`
	Filters []Filter          `toml:"filters,omitempty"`
}

// Filter bounds a numeric field. Omitted bounds are open.
type Filter struct {
	Field string   `toml:"field"`
	Min   *float64 `toml:"min,omitempty"`
	Max   *float64 `toml:"max,omitempty"`
}

// Cache configures the artifact cache.
type Cache struct {
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
	Disabled bool   `toml:"disabled,omitempty"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every chart.
func (c *Config) Validate() error {
	for _, name := range c.Names() {
		if err := c.Charts[name].Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "chart %q", name)
		}
	}
	return nil
}

// Names returns the chart names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Charts))
	for name := range c.Charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chart returns the chart called name.
func (c *Config) Chart(name string) (Chart, error) {
	ch, ok := c.Charts[name]
	if !ok {
		return Chart{}, errors.New(errors.ErrCodeNotFound, "no chart %q in config (have: %s)", name, strings.Join(c.Names(), ", "))
	}
	return ch, nil
}

// Validate checks the chart's kind, source, schema and options.
func (ch Chart) Validate() error {
	kind, err := render.ParseKind(ch.Kind)
	if err != nil {
		return err
	}
	if ch.Source != "" {
		if err := errors.ValidateSourcePath(ch.Source); err != nil {
			return err
		}
	}
	if ch.Palette != "" && scale.Palette(ch.Palette) == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown palette %q", ch.Palette)
	}
	if err := errors.ValidateDimension("width", ch.Width); err != nil {
		return err
	}
	schema, err := ch.Schema()
	if err != nil {
		return err
	}
	if schema.Shape != kind.Shape() {
		return errors.New(errors.ErrCodeInvalidConfig, "%s chart needs a %s dataset", kind, kind.Shape())
	}
	if err := schema.Validate(); err != nil {
		return err
	}
	opts, err := ch.Options()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// RenderKind returns the parsed chart kind.
func (ch Chart) RenderKind() (render.Kind, error) {
	return render.ParseKind(ch.Kind)
}

// Schema returns the dataset schema of the chart.
func (ch Chart) Schema() (dataset.Schema, error) {
	kind, err := render.ParseKind(ch.Kind)
	if err != nil {
		return dataset.Schema{}, err
	}
	s := dataset.Schema{Shape: kind.Shape(), Fields: make(map[dataset.Field]string, len(ch.Fields))}
	for name, col := range ch.Fields {
		f, err := parseField(name)
		if err != nil {
			return dataset.Schema{}, err
		}
		s.Fields[f] = col
	}
	for _, flt := range ch.Filters {
		f, err := parseField(flt.Field)
		if err != nil {
			return dataset.Schema{}, err
		}
		s.Filters = append(s.Filters, dataset.Filter{Field: f, Min: flt.Min, Max: flt.Max})
	}
	return s, nil
}

// Options returns the render options, with zero fields left for the
// renderer's defaults.
func (ch Chart) Options() (render.Options, error) {
	opts := render.Options{
		Height: ch.Height,
		Groups: slices.Clone(ch.Groups),
		XTitle: ch.XTitle,
		YTitle: ch.YTitle,
		Ticks:  ch.Ticks,
	}
	if ch.Margin != nil {
		opts.Margin = *ch.Margin
	}
	if ch.Fallback != nil {
		opts.Fallback = *ch.Fallback
	}
	if ch.Palette != "" {
		opts.Palette = scale.Palette(ch.Palette)
		if opts.Palette == nil {
			return render.Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown palette %q", ch.Palette)
		}
	}
	if ch.Ticks < 0 {
		return render.Options{}, errors.New(errors.ErrCodeInvalidConfig, "ticks cannot be negative: %d", ch.Ticks)
	}
	return opts, nil
}

func parseField(name string) (dataset.Field, error) {
	f := dataset.Field(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case dataset.FieldCategory, dataset.FieldGroup, dataset.FieldX, dataset.FieldY, dataset.FieldSize:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown field %q (valid: category, group, x, y, size)", name)
}
