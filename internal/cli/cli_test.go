package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
)

const gdpCSV = `Entity,Year,public_health_expenditure_pc_gdp
Chile,1870,0.1
Chile,2000,2.9
Chile,2010,3.6
Peru,2000,2.2
Peru,2010,3.1
`

const gdpConfig = `
[cache]
disabled = true

[charts.gdp]
kind = "line"
source = %q
width = 800

[charts.gdp.fields]
category = "Entity"
x = "Year"
y = "public_health_expenditure_pc_gdp"

[[charts.gdp.filters]]
field = "x"
min = 1880
`

// writeFixture writes a CSV and a config pointing at it, returning the
// config path.
func writeFixture(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	csvPath := filepath.Join(dir, "gdp.csv")
	if err := os.WriteFile(csvPath, []byte(gdpCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath = filepath.Join(dir, "chartkit.toml")
	cfg := strings.Replace(gdpConfig, "%q", `"`+filepath.ToSlash(csvPath)+`"`, 1)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, cfgPath
}

func newTestCLI() (*CLI, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, log.DebugLevel), &buf
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		x, y    float64
		wantErr bool
	}{
		{"412,230", 412, 230, false},
		{"10.5,-3", 10.5, -3, false},
		{"412", 0, 0, true},
		{"a,b", 0, 0, true},
	}

	for _, tt := range tests {
		x, y, err := parsePoint(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("parsePoint(%q) code = %v", tt.input, errors.GetCode(err))
			}
			continue
		}
		if x != tt.x || y != tt.y {
			t.Errorf("parsePoint(%q) = %v,%v, want %v,%v", tt.input, x, y, tt.x, tt.y)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		format   string
		multiple bool
		want     string
	}{
		{"default", "", "svg", false, "gdp.svg"},
		{"default multiple", "", "png", true, "gdp.png"},
		{"explicit single", "out/chart.svg", "svg", false, "out/chart.svg"},
		{"explicit multiple strips extension", "out/chart.svg", "png", true, "out/chart.png"},
		{"base path", "out/chart", "json", true, "out/chart.json"},
		{"unknown extension kept", "out/chart.v2", "svg", true, "out/chart.v2.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "gdp", tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfigPresets(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, _ := newTestCLI()
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := strings.Join(cfg.Names(), ","); got != "gdp,regions,tax" {
		t.Errorf("Names() = %v, want presets", got)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	c, _ := newTestCLI()
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")
	if _, err := c.loadConfig(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptionsOverrides(t *testing.T) {
	_, cfgPath := writeFixture(t)
	c, _ := newTestCLI()
	c.configPath = cfgPath

	opts, cfg, err := c.options("gdp", chartFlags{
		width: 640,
		sel:   []string{"Peru"},
		sheet: "Data",
	})
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}
	if opts.Width != 640 {
		t.Errorf("Width = %v, want 640", opts.Width)
	}
	if len(opts.Selection) != 1 || opts.Selection[0] != "Peru" {
		t.Errorf("Selection = %v", opts.Selection)
	}
	if opts.Chart.Sheet != "Data" {
		t.Errorf("Sheet = %q", opts.Chart.Sheet)
	}
	if !cfg.Cache.Disabled {
		t.Error("cache section not carried")
	}
	if opts.Logger != c.Logger {
		t.Error("CLI logger not injected")
	}

	if _, _, err := c.options("missing", chartFlags{}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown chart error = %v", err)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	_, cfgPath := writeFixture(t)
	c, _ := newTestCLI()
	c.configPath = cfgPath
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}

	cc, err := newCache(context.Background(), cfg.Cache, false)
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Close()
	if _, hit, _ := cc.Get(context.Background(), "k"); hit {
		t.Error("disabled cache should never hit")
	}
}

func TestRenderCommand(t *testing.T) {
	dir, cfgPath := writeFixture(t)
	out := filepath.Join(dir, "gdp.svg")

	c, logs := newTestCLI()
	root := c.RootCommand()
	root.SetArgs([]string{"render", "gdp", "--all", "--no-cache", "-c", cfgPath, "-o", out, "-i"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	svg := string(data)
	for _, want := range []string{`<svg`, `data-key="Chile"`, `data-key="Peru"`, "chartData"} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(logs.String(), "wrote artifact") {
		t.Errorf("debug log missing, got:\n%s", logs.String())
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	dir, cfgPath := writeFixture(t)
	base := filepath.Join(dir, "chart")

	c, _ := newTestCLI()
	root := c.RootCommand()
	root.SetArgs([]string{"render", "gdp", "-s", "Chile", "--no-cache", "-c", cfgPath, "-o", base, "-f", "svg,json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	_, cfgPath := writeFixture(t)
	c, _ := newTestCLI()
	root := c.RootCommand()
	root.SetArgs([]string{"render", "gdp", "-c", cfgPath, "-f", "gif"})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestConfigInitWritesPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartkit.toml")

	c, _ := newTestCLI()
	root := c.RootCommand()
	root.SetArgs([]string{"config", "init", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config init error: %v", err)
	}

	c.configPath = path
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if len(cfg.Charts) != 3 {
		t.Errorf("got %d charts, want 3", len(cfg.Charts))
	}

	root = c.RootCommand()
	root.SetArgs([]string{"config", "init", path})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("second init without --force should fail")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"interrupted", fmt.Errorf("load: %w", context.Canceled), ExitInterrupted},
		{"unknown chart", errors.New(errors.ErrCodeNotFound, "no chart %q", "pie"), ExitUsage},
		{"bad point", fmt.Errorf("hover: %w", errors.New(errors.ErrCodeInvalidInput, "bad point")), ExitUsage},
		{"load failure", errors.New(errors.ErrCodeLoad, "read gdp.csv"), ExitError},
		{"plain error", fmt.Errorf("write output"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	c, _ := newTestCLI()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out.String(), "__start_chartkit") {
		t.Errorf("bash script missing chartkit entry point:\n%.200s", out.String())
	}

	root = c.RootCommand()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestChartNameCompletion(t *testing.T) {
	_, cfgPath := writeFixture(t)
	c, _ := newTestCLI()
	root := c.RootCommand()
	c.configPath = cfgPath // after flag registration, which resets it
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{cobra.ShellCompRequestCmd, "render", ""})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("__complete error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 2 || lines[0] != "gdp" {
		t.Errorf("completions = %q, want gdp first", lines)
	}
}
