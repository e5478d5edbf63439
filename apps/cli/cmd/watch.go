package cmd

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/POE21L/tractconf/packages/output"
	"github.com/POE21L/tractconf/packages/schema"
)

// WatchDebounceDelay batches rapid successive writes from editors.
const WatchDebounceDelay = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Revalidate experiments on file changes",
	Long: `Watch a directory of experiment files and revalidate an
experiment whenever its file is written.

Examples:
  tractconf watch experiments/`,
	Args: cobra.ExactArgs(1),
	RunE: watchCommand,
}

func watchCommand(cmd *cobra.Command, args []string) error {
	dir := args[0]

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)

	// Validate everything once before settling into watch mode.
	if files, err := experiment.LoadDir(dir); err == nil {
		for _, f := range files {
			validateOne(formatter, f)
		}
	} else {
		formatter.FormatError(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", dir)

	// Editors can fire long bursts of writes; the limiter caps how often we
	// revalidate even after debouncing.
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !experiment.IsExperimentFile(event.Name) {
				continue
			}

			path := event.Name
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				if !limiter.Allow() {
					return
				}
				f, err := experiment.Load(path)
				if err != nil {
					formatter.FormatError(err)
					return
				}
				validateOne(formatter, f)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(err)
		}
	}
}

func validateOne(formatter *output.ConsoleFormatter, f *experiment.File) {
	cfg, err := f.Resolve()
	if err != nil {
		formatter.FormatViolations(f.Name, []schema.Violation{{Message: err.Error()}})
		return
	}
	violations, err := schema.Validate(cfg)
	if err != nil {
		formatter.FormatError(err)
		return
	}
	formatter.FormatViolations(f.Name, violations)
}
