package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/config"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartkit"

	// cellWidth and cellHeight convert terminal cells to surface pixels.
	cellWidth  = 10
	cellHeight = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// Process exit statuses returned by ExitCode.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode maps a command error to a process exit status. Bad input and
// unknown charts or files exit with ExitUsage; an interrupt exits with
// ExitInterrupted.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidChartKind,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath,
		errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitError
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag. Empty means chartkit.toml in
	// the working directory, falling back to the built-in presets.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Timestamps follow the level as in
// newLogger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportTimestamp(level <= log.DebugLevel)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration named by --config. Without the flag a
// missing chartkit.toml is not an error and the built-in presets are used.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	cfg, err := config.Load(config.DefaultFile)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		c.Logger.Debug("no config file, using presets", "file", config.DefaultFile)
		return config.Default(), nil
	}
	return cfg, err
}

// chartFlags are the chart overrides shared by every command that loads a
// chart.
type chartFlags struct {
	source string
	sheet  string
	width  float64
	height float64
	sel    []string
	all    bool
}

// options resolves the named chart and applies flag overrides.
func (c *CLI) options(name string, f chartFlags) (pipeline.Options, *config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, nil, err
	}
	ch, err := cfg.Chart(name)
	if err != nil {
		return pipeline.Options{}, nil, err
	}
	if f.source != "" {
		ch.Source = f.source
	}
	if f.sheet != "" {
		ch.Sheet = f.sheet
	}

	opts := pipeline.FromConfig(ch)
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.height > 0 {
		opts.Height = f.height
	}
	if len(f.sel) > 0 {
		opts.Selection = f.sel
	}
	opts.SelectAll = f.all
	opts.Logger = c.Logger
	return opts, cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Cache, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.RedisURL, appName+":")
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartkit/).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parsePoint parses an "x,y" pointer position.
func parsePoint(s string) (float64, float64, error) {
	var x, y float64
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid point %q (want x,y)", s)
	}
	return x, y, nil
}
