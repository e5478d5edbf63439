package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/POE21L/tractconf/packages/core/config"
	"github.com/POE21L/tractconf/packages/rundb"
	"github.com/POE21L/tractconf/packages/schema"
	"github.com/POE21L/tractconf/packages/stats"
)

type ConsoleFormatter struct {
	writer  io.Writer
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatConfig prints a resolved config, one field per line. Overridden
// is the set of field names the experiment file itself set; those lines are
// highlighted so the override surface is visible at a glance.
func (f *ConsoleFormatter) FormatConfig(cfg *config.Config, overridden map[string]bool) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold("Experiment: "+cfg.ExpName))
	for _, key := range cfg.Fields() {
		v := cfg.Get(key)
		rendered := "-"
		if v != nil {
			rendered = fmt.Sprintf("%v", v)
		}
		line := fmt.Sprintf("  %-20s %s", key, rendered)
		if overridden[key] {
			line = cyan(line) + " *"
		}
		fmt.Fprintf(f.writer, "%s\n", line)
	}
}

// FormatDiff prints the differing fields of two resolved configs.
func (f *ConsoleFormatter) FormatDiff(nameA, nameB string, diffs []config.FieldDiff) {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold(fmt.Sprintf("%s vs %s", nameA, nameB)))
	if len(diffs) == 0 {
		fmt.Fprintf(f.writer, "  configs are identical\n")
		return
	}
	for _, d := range diffs {
		fmt.Fprintf(f.writer, "  %-20s %s -> %s\n", d.Field, red(d.A), green(d.B))
	}
}

// FormatViolations prints validation results for one experiment.
func (f *ConsoleFormatter) FormatViolations(name string, violations []schema.Violation) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if len(violations) == 0 {
		fmt.Fprintf(f.writer, "%s %s\n", green("✓"), name)
		return
	}
	fmt.Fprintf(f.writer, "%s %s\n", red("✗"), name)
	for _, v := range violations {
		fmt.Fprintf(f.writer, "    %s\n", red(v.String()))
	}
}

// FormatRun prints one recorded run.
func (f *ConsoleFormatter) FormatRun(run *rundb.Run) {
	cyan := color.New(color.FgCyan).SprintFunc()

	status := run.Status
	switch run.Status {
	case rundb.StatusFinished:
		status = color.New(color.FgGreen).Sprint(status)
	case rundb.StatusFailed:
		status = color.New(color.FgRed).Sprint(status)
	}

	fmt.Fprintf(f.writer, "%s  %-30s %s  %s", cyan(run.ID), run.Experiment, status,
		run.CreatedAt.Format(time.RFC3339))
	if d := run.Duration(); d > 0 {
		fmt.Fprintf(f.writer, "  (%s)", d.Round(time.Second))
	}
	fmt.Fprintf(f.writer, "\n")
}

// FormatStats prints a wall-time summary for an experiment's runs.
func (f *ConsoleFormatter) FormatStats(experiment string, s *stats.Summary) {
	bold := color.New(color.Bold).SprintFunc()

	if experiment == "" {
		experiment = "all experiments"
	}
	fmt.Fprintf(f.writer, "%s (%d finished runs)\n", bold(experiment), s.Count)
	fmt.Fprintf(f.writer, "  min  %s\n", s.Min)
	fmt.Fprintf(f.writer, "  mean %s\n", s.Mean)
	fmt.Fprintf(f.writer, "  p50  %s\n", s.P50)
	fmt.Fprintf(f.writer, "  p95  %s\n", s.P95)
	fmt.Fprintf(f.writer, "  p99  %s\n", s.P99)
	fmt.Fprintf(f.writer, "  max  %s\n", s.Max)
}

// FormatError prints an error line to the formatter's writer.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("error:"), err)
}
