package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// hoverCommand creates the hover command, which replays pointer positions
// against a rendered chart and prints the resulting highlight and tooltip.
func (c *CLI) hoverCommand() *cobra.Command {
	var (
		flags   chartFlags
		points  []string
		leave   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "hover [chart]",
		Short: "Replay pointer positions and print the tooltip",
		Long: `Replay pointer positions against a chart and print what a viewer would see.

Each --at position is delivered in order as a pointer event in surface pixel
coordinates. After every event the highlighted key and the tooltip content
are printed. Positions outside the chart are ignored.`,
		Example: `  chartkit hover tax --at 412,230
  chartkit hover gdp --all --at 300,200 --at 500,200 --leave`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.chartNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(points) == 0 {
				return fmt.Errorf("at least one --at position is required")
			}
			return c.runHover(cmd.Context(), args[0], flags, points, leave, noCache)
		},
	}

	addChartFlags(cmd, &flags)
	cmd.Flags().StringArrayVar(&points, "at", nil, "pointer position x,y (repeatable)")
	cmd.Flags().BoolVar(&leave, "leave", false, "send a pointer leave after the last position")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runHover(ctx context.Context, name string, flags chartFlags, points []string, leave, noCache bool) error {
	opts, cfg, err := c.options(name, flags)
	if err != nil {
		return err
	}
	opts.SetRenderDefaults()

	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	ch, err := pipeline.NewChart(ds, opts)
	if err != nil {
		return err
	}
	defer ch.Close()

	p := ch.Pass()
	printInfo("%s: %d records, %.0fx%.0f", name, ds.Len(), p.Width, p.Height)
	for _, s := range points {
		x, y, err := parsePoint(s)
		if err != nil {
			return err
		}
		ch.PointerAt(surface.Point{X: x, Y: y})
		printNewline()
		printKeyValue("pointer", fmt.Sprintf("%g,%g", x, y))
		printHoverState(ch)
	}
	if leave {
		ch.Leave()
		printNewline()
		printKeyValue("pointer", "leave")
		printHoverState(ch)
	}
	return nil
}

// printHoverState prints the highlight and tooltip of ch.
func printHoverState(ch *chart.Chart) {
	if key, ok := ch.Highlight(); ok {
		printKeyValue("highlight", key)
	} else {
		printKeyValue("highlight", StyleDim.Render("none"))
	}

	tip := ch.Tooltip()
	if !tip.Visible {
		printKeyValue("tooltip", StyleDim.Render("hidden"))
		return
	}
	printKeyValue("tooltip", fmt.Sprintf("at %.0f,%.0f", tip.Anchor.X, tip.Anchor.Y))
	fmt.Println(renderTooltip(tip.Content))
}

// renderTooltip draws tooltip content as a bordered box.
func renderTooltip(tc surface.TooltipContent) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(tc.Title))
	for _, row := range tc.Rows {
		b.WriteString("\n")
		label := row.Label
		if row.Color != "" {
			label = swatch(row.Color) + " " + label
		}
		if row.Value != "" {
			label += ": " + StyleNumber.Render(row.Value)
		}
		b.WriteString(label)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1).
		MarginLeft(2).
		Render(b.String())
}
