package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The CLI's logger is attached to every command's context, so helpers can
// reach it through loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Chartkit renders interactive statistical charts",
		Long: `Chartkit loads tabular data from CSV or XLSX files and renders line, bubble
and tile charts with hover highlighting and tooltips.

Charts are defined in chartkit.toml. Without a config file the built-in
presets (gdp, tax, regions) are used.`,
		Version:      buildinfo.Read().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./chartkit.toml or built-in presets)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.hoverCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// chartNames completes chart names from the active config.
func (c *CLI) chartNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cfg.Names(), cobra.ShellCompDirectiveNoFileComp
}

// addChartFlags registers the shared chart override flags.
func addChartFlags(cmd *cobra.Command, f *chartFlags) {
	cmd.Flags().StringVar(&f.source, "source", "", "override the chart's data file (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet name for .xlsx sources")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width (default: chart config or 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height (default: derived from width)")
	cmd.Flags().StringSliceVarP(&f.sel, "select", "s", nil, "visible series for line charts (comma-separated)")
	cmd.Flags().BoolVar(&f.all, "all", false, "select every series")
}
