// Package pkg provides the core libraries for chartkit interactive charts.
//
// # Overview
//
// Chartkit draws statistical charts (multi-series lines, bubble plots and
// grouped tiles) from tabular data, and keeps per-chart hover state:
// highlighting, a shared tooltip and a vertical guide line. The pkg directory
// is organized into four main areas:
//
//  1. Data: [dataset] loads CSV/XLSX records through a field [config] schema.
//  2. Geometry: [scale] and [layout] compute domains, ticks, label positions
//     and tile grids.
//  3. Drawing: [render] clears and redraws a [surface] on every pass;
//     [render/sink] serializes it to SVG, PNG, PDF or JSON.
//  4. Interaction: [interact] maps pointer events to highlight and tooltip
//     state; [chart] ties a renderer, controller, [selection] and [viewport]
//     together.
//
// # Architecture
//
// The typical data flow through chartkit:
//
//	CSV / XLSX file
//	       ↓
//	  [dataset] (typed records, unparseable rows dropped)
//	       ↓
//	  [chart] ← [selection], [viewport]
//	       ↓
//	  [render] → [surface] (elements with class, key and datum)
//	       ↓                     ↑
//	  [render/sink]          [interact] (pointer → highlight, tooltip)
//	       ↓
//	  SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Load a dataset and render a bubble chart:
//
//	import (
//	    "github.com/matzehuels/chartkit/pkg/config"
//	    "github.com/matzehuels/chartkit/pkg/pipeline"
//	)
//
//	ch, _ := config.Default().Chart("tax")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	opts := pipeline.FromConfig(ch)
//	opts.Formats = []string{"svg", "png"}
//	result, _ := runner.Execute(ctx, opts)
//	os.WriteFile("tax.svg", result.Artifacts["svg"], 0o644)
//
// Drive a chart directly and query its hover state:
//
//	c, _ := pipeline.NewChart(ds, opts)
//	defer c.Close()
//	c.PointerAt(surface.Point{X: 412, Y: 230})
//	if tip := c.Tooltip(); tip.Visible {
//	    fmt.Println(tip.Content.Title)
//	}
//
// # Main Packages
//
// ## Engine
//
// [scale] - Linear, square-root, ordinal and color-ramp scales with
// degenerate-domain fallbacks. Never produces NaN.
//
// [layout] - Pure geometry: margins, series label collision avoidance,
// legend entries and tile grids.
//
// [surface] - The per-chart element list, hit testing and the shared
// tooltip registry.
//
// [render] - Line, bubble and tile renderers. Each pass starts from an empty
// surface.
//
// [interact] - Hover state machine: group and series highlighting, tooltip
// ownership, the line chart's tracking guide.
//
// [chart] - A chart instance: recompute-on-change, stale-load protection,
// viewport observation.
//
// ## Infrastructure
//
// [pipeline] - Load → render → sink orchestration with dataset and artifact
// caching, used by the CLI.
//
// [cache] - File, Redis and null cache backends with content-addressed keys.
//
// [config] - TOML chart definitions and the built-in presets.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hook registry for load, render, cache and interaction
// events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/interact/... # Specific package
//	go test -run Example       # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/dataset
// [config]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/config
// [scale]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/render/sink
// [surface]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/surface
// [interact]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/interact
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/chart
// [selection]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/selection
// [viewport]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/viewport
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/observability
package pkg
