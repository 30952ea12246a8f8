package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/render/sink"
	"github.com/matzehuels/chartkit/pkg/selection"
	"github.com/matzehuels/chartkit/pkg/surface"
	"github.com/matzehuels/chartkit/pkg/viewport"
)

// Render draws ds and generates output artifacts in the requested formats.
func Render(ctx context.Context, ds *dataset.Dataset, opts Options) (map[string][]byte, render.Pass, error) {
	c, err := NewChart(ds, opts, chart.WithTooltips(surface.NewTooltipRegistry()))
	if err != nil {
		return nil, render.Pass{}, err
	}
	defer c.Close()

	var (
		artifacts map[string][]byte
		pass      render.Pass
	)
	hooks := observability.Pipeline()
	hooks.OnSinkStart(ctx, opts.Formats)
	start := time.Now()
	c.Read(func(s *surface.Surface, p render.Pass) {
		pass = p
		artifacts, err = renderSinks(s, p, ds, opts)
	})
	hooks.OnSinkComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, pass, err
	}
	return artifacts, pass, nil
}

func renderSinks(s *surface.Surface, p render.Pass, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{sink.WithPass(p)}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	source := ""
	if ds != nil {
		source = ds.Source
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(s, sink.WithJSONKind(string(p.Kind)), sink.WithJSONSource(source))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// NewChart builds a chart for opts.Chart, binds ds and sizes it to the
// options' viewport. Extra chart options are applied after the pipeline's own.
func NewChart(ds *dataset.Dataset, opts Options, extra ...chart.Option) (*chart.Chart, error) {
	kind, err := render.ParseKind(opts.Chart.Kind)
	if err != nil {
		return nil, err
	}
	ropts, err := opts.Chart.Options()
	if err != nil {
		return nil, err
	}
	r, err := render.New(kind, ropts)
	if err != nil {
		return nil, err
	}

	sel := selection.New(opts.Selection...)
	if opts.SelectAll {
		sel = selection.All(ds.Categories())
	}

	copts := append([]chart.Option{chart.WithLogger(opts.Logger), chart.WithSelection(sel)}, extra...)
	c := chart.New(r, copts...)
	c.SetDataset(ds)
	c.Resize(viewport.Size{Width: opts.Width, Height: opts.Height})
	return c, nil
}
