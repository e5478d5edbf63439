package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/POE21L/tractconf/packages/output"
	"github.com/POE21L/tractconf/packages/rundb"
	"github.com/POE21L/tractconf/packages/stats"
)

var (
	runsDBFlag         string
	runsExperimentFlag string
	runsLimitFlag      int
	runsQueryFlag      string
	runsFailedFlag     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Run metadata commands",
	Long: `Record and inspect run metadata. Every recorded run stores the
fully resolved configuration it was started with.`,
}

var runsRecordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Record a new run for an experiment",
	Long: `Resolve an experiment file and record a new pending run with the
effective configuration.

Examples:
  tractconf runs record experiments/DmReg_12g90g270g_125mm_DAugAll.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runsRecordCommand,
}

var runsFinishCmd = &cobra.Command{
	Use:   "finish <run-id>",
	Short: "Mark a run finished",
	Args:  cobra.ExactArgs(1),
	RunE:  runsFinishCommand,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE:  runsListCommand,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run's configuration",
	Long: `Show the configuration a run was started with, or a single value
from it.

Examples:
  tractconf runs show 5b3f...
  tractconf runs show 5b3f... --query num_epochs
  tractconf runs show 5b3f... --query metric_types.0`,
	Args: cobra.ExactArgs(1),
	RunE: runsShowCommand,
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wall-time percentiles over finished runs",
	RunE:  runsStatsCommand,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDBFlag, "db", "runs.db", "Path to the run database")

	runsFinishCmd.Flags().BoolVar(&runsFailedFlag, "failed", false, "Mark the run failed instead of finished")
	runsListCmd.Flags().StringVarP(&runsExperimentFlag, "experiment", "e", "", "Only runs of this experiment")
	runsListCmd.Flags().IntVarP(&runsLimitFlag, "limit", "n", 20, "Maximum number of runs to list")
	runsShowCmd.Flags().StringVarP(&runsQueryFlag, "query", "q", "", "Print a single config value at this path")
	runsStatsCmd.Flags().StringVarP(&runsExperimentFlag, "experiment", "e", "", "Only runs of this experiment")

	runsCmd.AddCommand(runsRecordCmd)
	runsCmd.AddCommand(runsFinishCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
}

func openStore() (*rundb.Store, error) {
	return rundb.Open(runsDBFlag)
}

func runsRecordCommand(cmd *cobra.Command, args []string) error {
	f, err := experiment.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := f.Resolve()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Record(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", run.ID)
	return nil
}

func runsFinishCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Finish(args[0], runsFailedFlag)
}

func runsListCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(runsExperimentFlag, runsLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no runs recorded\n")
		return nil
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
	for _, run := range runs {
		formatter.FormatRun(run)
	}
	return nil
}

func runsShowCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if runsQueryFlag != "" {
		value, err := store.Query(args[0], runsQueryFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", value)
		return nil
	}

	run, err := store.Get(args[0])
	if err != nil {
		return err
	}
	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
	formatter.FormatRun(run)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", run.ConfigJSON)
	return nil
}

func runsStatsCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	durations, err := store.Durations(runsExperimentFlag)
	if err != nil {
		return err
	}
	summary, err := stats.Summarize(durations)
	if err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
	formatter.FormatStats(runsExperimentFlag, summary)
	return nil
}
