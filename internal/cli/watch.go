package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/render/sink"
	"github.com/matzehuels/chartkit/pkg/surface"
	"github.com/matzehuels/chartkit/pkg/viewport"
)

// watchCommand creates the watch command, which re-renders a chart whenever
// the terminal is resized.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags   chartFlags
		output  string
		window  time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "watch [chart]",
		Short: "Re-render a chart to SVG as the terminal is resized",
		Long: `Re-render a chart to an interactive SVG whenever the terminal is resized.

The terminal stands in for the chart's container: its size in cells is
converted to pixels and fed through the same debounced viewport observer an
embedding application would use, so a burst of resize events produces a
single redraw once the terminal settles.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.chartNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[0] + ".svg"
			}
			return c.runWatch(cmd.Context(), args[0], flags, output, window, noCache)
		},
	}

	addChartFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG file (default: <chart>.svg)")
	cmd.Flags().DurationVar(&window, "debounce", viewport.DefaultWindow, "quiet period before a resize is applied")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, name string, flags chartFlags, output string, window time.Duration, noCache bool) error {
	opts, cfg, err := c.options(name, flags)
	if err != nil {
		return err
	}
	// The terminal decides the viewport.
	opts.Width, opts.Height = 0, 0

	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	// Logging would tear the alternate screen.
	opts.Logger = nil
	ch, err := pipeline.NewChart(ds, opts)
	if err != nil {
		return err
	}
	defer ch.Close()

	var prog *tea.Program
	obs := viewport.NewObserver(window, func(size viewport.Size) {
		start := time.Now()
		ch.Resize(size)
		err := writeSVG(ch, output)
		prog.Send(watchRenderedMsg{
			size:    size,
			passes:  ch.Passes(),
			elapsed: time.Since(start),
			err:     err,
		})
	})
	defer obs.Stop()

	model := newWatchModel(name, output, obs, flags.height)
	prog = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if m, ok := final.(watchModel); ok && m.renders > 0 {
		printSuccess("Rendered %s %d times", name, m.renders)
		printFile(output)
	}
	return nil
}

// writeSVG writes the chart's current surface as an interactive SVG.
func writeSVG(ch *chart.Chart, path string) error {
	var data []byte
	ch.Read(func(s *surface.Surface, p render.Pass) {
		data = sink.RenderSVG(s, sink.WithPass(p), sink.WithInteraction())
	})
	return os.WriteFile(path, data, 0o644)
}

// cellsToViewport converts a terminal size to surface pixels. The status
// lines are excluded. A fixed height overrides the terminal's.
func cellsToViewport(cols, rows int, height float64) viewport.Size {
	size := viewport.Size{
		Width:  float64(cols * cellWidth),
		Height: float64(max(rows-watchStatusLines, 0) * cellHeight),
	}
	if height > 0 {
		size.Height = height
	}
	return size
}

// =============================================================================
// watchModel - Resize-driven render loop
// =============================================================================

const watchStatusLines = 6

// watchRenderedMsg reports a finished redraw.
type watchRenderedMsg struct {
	size    viewport.Size
	passes  int
	elapsed time.Duration
	err     error
}

type watchModel struct {
	name    string
	output  string
	height  float64
	obs     *viewport.Observer
	cols    int
	rows    int
	pending viewport.Size
	last    watchRenderedMsg
	renders int
}

func newWatchModel(name, output string, obs *viewport.Observer, height float64) watchModel {
	return watchModel{name: name, output: output, obs: obs, height: height}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			// Flush calls back into Send, so it must not run on the
			// event loop.
			obs := m.obs
			return m, func() tea.Msg {
				obs.Flush()
				return nil
			}
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.pending = cellsToViewport(msg.Width, msg.Height, m.height)
		m.obs.Observe(m.pending)
	case watchRenderedMsg:
		m.last = msg
		if msg.err == nil {
			m.renders++
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Watching " + m.name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("resize the terminal to redraw  r flush  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  terminal  %s\n", StyleValue.Render(fmt.Sprintf("%dx%d cells", m.cols, m.rows))))
	b.WriteString(fmt.Sprintf("  pending   %s\n", StyleValue.Render(sizeString(m.pending))))

	switch {
	case m.last.err != nil:
		b.WriteString("  " + styleIconError.Render(iconError) + " " + m.last.err.Error())
	case m.renders == 0:
		b.WriteString("  " + StyleDim.Render("waiting for the terminal to settle"))
	default:
		b.WriteString(fmt.Sprintf("  %s %s %s %s",
			styleIconSuccess.Render(iconSuccess),
			StyleValue.Render(sizeString(m.last.size)),
			StyleDim.Render(fmt.Sprintf("pass %d · %s ·", m.last.passes, m.last.elapsed.Round(time.Millisecond))),
			StyleValue.Render(m.output)))
	}
	return b.String()
}

func sizeString(s viewport.Size) string {
	return fmt.Sprintf("%.0fx%.0f px", s.Width, s.Height)
}
