package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/render"
)

const defaultInspectLimit = 20

// inspectCommand creates the inspect command, which summarizes a chart's
// dataset and the scales of its render pass.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   chartFlags
		limit   int
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:               "inspect [chart]",
		Short:             "Show a chart's dataset and scales",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.chartNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], flags, limit, noCache, refresh)
		},
	}

	addChartFlags(cmd, &flags)
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultInspectLimit, "maximum records to list (0 lists none)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the data file, bypassing the dataset cache")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, name string, flags chartFlags, limit int, noCache, refresh bool) error {
	opts, cfg, err := c.options(name, flags)
	if err != nil {
		return err
	}
	opts.Refresh = refresh
	opts.SetRenderDefaults()

	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger, name)
	ds, cached, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.stage("load", "records", ds.Len(), "cached", cached)

	ch, err := pipeline.NewChart(ds, opts)
	if err != nil {
		return err
	}
	defer ch.Close()
	prog.stage("render", "passes", ch.Passes())
	prog.done("inspected "+opts.Chart.Source, "records", ds.Len())

	fmt.Println(StyleTitle.Render(name))
	printKeyValue("kind", opts.Chart.Kind)
	printKeyValue("source", ds.Source)
	printKeyValue("shape", string(ds.Shape))
	printStats(ds, cached)
	if ds.Defaulted > 0 {
		printDetail("%s with unparseable optional fields", count(ds.Defaulted, "records"))
	}
	printNewline()

	printPass(ch.Pass(), len(ds.Categories()))
	if limit > 0 && ds.Len() > 0 {
		printNewline()
		fmt.Println(recordTable(ds, limit))
		if ds.Len() > limit {
			printDetail("%d more records", ds.Len()-limit)
		}
	}
	return nil
}

// printPass prints the viewport and scale domains of a render pass.
func printPass(p render.Pass, categories int) {
	if !p.Ready {
		printWarning("viewport not measured, nothing drawn")
		return
	}
	printKeyValue("viewport", fmt.Sprintf("%.0fx%.0f", p.Width, p.Height))
	switch p.Kind {
	case render.KindLine:
		printKeyValue("x domain", domain(p.X.Domain().Min, p.X.Domain().Max))
		printKeyValue("y domain", domain(p.Y.Domain().Min, p.Y.Domain().Max))
		printKeyValue("series", fmt.Sprintf("%d of %d drawn", len(p.Series), categories))
		if len(p.Series) > 0 {
			printKeyValue("", legendLine(p.Colors, seriesKeys(p)))
		}
	case render.KindBubble:
		printKeyValue("x domain", domain(p.X.Domain().Min, p.X.Domain().Max))
		printKeyValue("y domain", domain(p.Y.Domain().Min, p.Y.Domain().Max))
		printKeyValue("size domain", domain(p.Size.Domain().Min, p.Size.Domain().Max))
		printKeyValue("groups", legendLine(p.Colors, p.Colors.Domain()))
	case render.KindTile:
		printKeyValue("fill domain", domain(p.Ramp.Domain().Min, p.Ramp.Domain().Max))
		printKeyValue("tiles", fmt.Sprintf("%d in %d groups", categories, len(p.Tiles.Groups)))
	}
}

func seriesKeys(p render.Pass) []string {
	keys := make([]string, len(p.Series))
	for i, s := range p.Series {
		keys[i] = s.Key
	}
	return keys
}

func domain(lo, hi float64) string {
	return fmt.Sprintf("[%s, %s]", render.Grouped(lo), render.Grouped(hi))
}

// recordTable renders the first limit records as a table.
func recordTable(ds *dataset.Dataset, limit int) string {
	fields := append(ds.Shape.Required(), ds.Shape.Optional()...)
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = string(f)
	}

	n := min(limit, ds.Len())
	rows := make([][]string, n)
	for i, r := range ds.Records[:n] {
		row := make([]string, len(fields))
		for j, f := range fields {
			switch f {
			case dataset.FieldCategory:
				row[j] = r.Category
			case dataset.FieldGroup:
				row[j] = r.Group
			default:
				row[j] = render.Grouped(r.Value(f))
			}
		}
		rows[i] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if fields[col].Numeric() {
				return cellStyle.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cellStyle
		}).
		Render()
}
