package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect chart configuration",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configListCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the built-in chart presets to a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := config.Default().Encode(f); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Wrote config")
			printFile(path)
			printNewline()
			printNextStep("Render a chart", appName+" render gdp --all")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// configListCommand creates the "config list" subcommand.
func (c *CLI) configListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the configured charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(cfg.Charts))
			for _, name := range cfg.Names() {
				ch := cfg.Charts[name]
				width := "auto"
				if ch.Width > 0 {
					width = fmt.Sprintf("%.0f", ch.Width)
				}
				rows = append(rows, []string{name, ch.Kind, ch.Source, width})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			cellStyle := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Chart", "Kind", "Source", "Width").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1:
						return headerStyle
					case col == 0:
						return cellStyle.Foreground(colorCyan)
					case col == 2:
						return cellStyle.Foreground(colorGray)
					}
					return cellStyle
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}
