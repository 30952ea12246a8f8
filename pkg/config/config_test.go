package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render"
)

const sample = `
[cache]
dir = "/tmp/chartkit"

[charts.gdp]
kind = "line"
source = "data/full-gdp.csv"
height = 420
select = ["Chile", "Peru"]

[charts.gdp.margin]
top = 20
right = 60
bottom = 30
left = 40

[charts.gdp.fields]
category = "Entity"
x = "Year"
y = "public_health_expenditure_pc_gdp"

[[charts.gdp.filters]]
field = "x"
min = 1880

[charts.tax]
kind = "bubble"
source = "data/tax.xlsx"
palette = "category10"

[charts.tax.fallback]
x = 20000

[charts.tax.fields]
category = "Entity"
group = "Continent"
x = "Tax"
y = "Health"
size = "Population"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cfg.Names(); len(got) != 2 || got[0] != "gdp" || got[1] != "tax" {
		t.Errorf("Names() = %v", got)
	}
	if cfg.Cache.Dir != "/tmp/chartkit" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}

	gdp, _ := cfg.Chart("gdp")
	opts, err := gdp.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Height != 420 || opts.Margin.Left != 40 || opts.Margin.Right != 60 {
		t.Errorf("Options() = %+v", opts)
	}
	if len(gdp.Select) != 2 {
		t.Errorf("Select = %v", gdp.Select)
	}

	schema, err := gdp.Schema()
	if err != nil {
		t.Fatal(err)
	}
	if schema.Shape != dataset.ShapeSeries || schema.Fields[dataset.FieldY] != "public_health_expenditure_pc_gdp" {
		t.Errorf("Schema() = %+v", schema)
	}
	if len(schema.Filters) != 1 || schema.Filters[0].Min == nil || *schema.Filters[0].Min != 1880 || schema.Filters[0].Max != nil {
		t.Errorf("filters = %+v", schema.Filters)
	}

	tax, _ := cfg.Chart("tax")
	topts, _ := tax.Options()
	if topts.Fallback.X != 20000 || topts.Palette[0] != "#1f77b4" {
		t.Errorf("tax options = %+v", topts)
	}
	if got := topts.WithDefaults(render.KindBubble).Fallback.Y; got != 5000 {
		t.Errorf("unset fallback y = %v, want preset 5000", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[charts.a]\nkind = \"line\"\ncolour = \"red\"\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\ny = \"y\"\n"},
		{"unknown kind", "[charts.a]\nkind = \"pie\"\n"},
		{"missing field", "[charts.a]\nkind = \"line\"\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\n"},
		{"unknown field", "[charts.a]\nkind = \"line\"\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\ny = \"y\"\ncolor = \"k\"\n"},
		{"bad source", "[charts.a]\nkind = \"line\"\nsource = \"data.json\"\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\ny = \"y\"\n"},
		{"bad palette", "[charts.a]\nkind = \"line\"\npalette = \"viridis\"\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\ny = \"y\"\n"},
		{"negative height", "[charts.a]\nkind = \"line\"\nheight = -1\n[charts.a.fields]\ncategory = \"c\"\nx = \"x\"\ny = \"y\"\n"},
		{"syntax", "[charts.a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if errors.GetCode(err) == "" {
				t.Errorf("error %v has no code", err)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	for name, want := range map[string]render.Kind{"gdp": render.KindLine, "tax": render.KindBubble, "regions": render.KindTile} {
		ch, err := cfg.Chart(name)
		if err != nil {
			t.Fatal(err)
		}
		if k, _ := ch.RenderKind(); k != want {
			t.Errorf("%s kind = %v, want %v", name, k, want)
		}
	}
	if _, err := cfg.Chart("pie"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Chart(pie) error = %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(Encode(Default())) error = %v\n%s", err, buf.String())
	}
	gdp, _ := cfg.Chart("gdp")
	if len(gdp.Filters) != 1 || *gdp.Filters[0].Min != 1880 {
		t.Errorf("filters lost in round trip: %+v", gdp.Filters)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
