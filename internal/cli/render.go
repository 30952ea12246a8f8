package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart       chartFlags
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	interactive bool    // embed the hover script in SVG output
	scale       float64 // PNG scale factor
	title       string  // document title for SVG output
	pick        bool    // choose series interactively before rendering
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [chart]",
		Short: "Render a configured chart to SVG, PNG, PDF or JSON",
		Long: `Render a configured chart to one or more output files.

The chart is looked up by name in chartkit.toml (or the built-in presets).
Loaded datasets and rendered artifacts are cached locally, keyed by the data
file's modification time, so repeated renders are fast.

Line charts draw only the selected series. Use --select, --all or --pick to
choose them.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.chartNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	addChartFlags(cmd, &opts.chart)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "embed hover highlighting and tooltips in SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title")
	cmd.Flags().BoolVarP(&opts.pick, "pick", "p", false, "pick line series interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the data file, bypassing the dataset cache")

	return cmd
}

// runRender runs the pipeline for one chart and writes every artifact.
func (c *CLI) runRender(ctx context.Context, name string, ro *renderOpts) error {
	opts, cfg, err := c.options(name, ro.chart)
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(ro.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.Interactive = ro.interactive
	opts.Scale = ro.scale
	opts.Title = ro.title
	opts.Refresh = ro.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	runner, err := c.newRunner(ctx, cfg.Cache, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger, name)
	spinner := newSpinner(ctx, os.Stderr, loadingMessage(name, opts.Chart.Source))
	spinner.Start()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}
	prog.stage("load", "records", ds.Len(), "dropped", ds.Dropped)

	if ro.pick {
		spinner.Stop()
		picked, ok, err := pickSeries(ds.Categories(), opts.Selection)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
		opts.Selection, opts.SelectAll = picked, false
		prog.stage("pick", "series", len(picked))
		spinner = newSpinner(ctx, os.Stderr, "")
		spinner.Start()
	}
	spinner.Update(renderingMessage(name, ds, opts.Formats))

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.stage("render", "formats", strings.Join(opts.Formats, ","), "cached", renderHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %s", name)
	for _, format := range opts.Formats {
		path := outputPath(ro.output, name, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(artifacts[format]))
		printFile(path)
	}
	printStats(ds, renderHit)
	if opts.Chart.Kind == "line" && len(opts.Selection) == 0 && !opts.SelectAll && !ro.pick {
		printNewline()
		printNextStep("No series selected, try", fmt.Sprintf("%s render %s --all", appName, name))
	}
	return nil
}

// outputPath derives the file name for one format. With a single format an
// explicit output is used as-is; otherwise its known extension is replaced.
func outputPath(output, name, format string, multiple bool) string {
	if output == "" {
		return name + "." + format
	}
	if !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}
