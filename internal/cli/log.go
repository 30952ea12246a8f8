// Package cli implements the chartkit command-line interface.
//
// The CLI hosts the chart engine the way an embedding application would: it
// loads data, owns the render scheduling, offers a terminal series picker and
// feeds terminal resizes into the viewport observer. Commands are built with
// cobra and log through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Render a configured chart to SVG, PNG, PDF or JSON
//   - hover: Replay pointer positions and print highlight and tooltip state
//   - inspect: Summarize a chart's dataset and scales
//   - watch: Re-render as the terminal is resized
//   - config: Write or list chart configuration
//   - cache: Manage the dataset and artifact cache
//
// # Logging
//
// --verbose (-v) enables debug logging with timestamps and per-stage timings;
// --quiet (-q) keeps only warnings. The logger travels in the command's
// context.Context.
//
// # Example
//
//	import "github.com/matzehuels/chartkit/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    os.Exit(cli.ExitCode(c.RootCommand().Execute()))
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps are only reported at debug
// level, where they line up stage timings.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		TimeFormat: "15:04:05.00",
		Level:      level,
	})
	l.SetReportTimestamp(level <= log.DebugLevel)
	return l
}

// progress times the stages of one chart command. Stages log at debug
// level with the time since the previous stage; done logs the total.
type progress struct {
	logger *log.Logger
	chart  string
	start  time.Time
	mark   time.Time
	now    func() time.Time
}

func newProgress(l *log.Logger, chart string) *progress {
	p := &progress{logger: l, chart: chart, now: time.Now}
	p.start = p.now()
	p.mark = p.start
	return p
}

// stage logs the end of one step, e.g. "load" or "render".
func (p *progress) stage(name string, keyvals ...any) {
	now := p.now()
	kv := append([]any{"chart", p.chart, "stage", name, "took", now.Sub(p.mark).Round(time.Millisecond)}, keyvals...)
	p.logger.Debug("stage complete", kv...)
	p.mark = now
}

// done logs msg with the total elapsed time.
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"chart", p.chart, "elapsed", p.now().Sub(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, kv...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
