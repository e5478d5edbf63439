package cmd

import (
	"github.com/POE21L/tractconf/packages/core/config"
	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/POE21L/tractconf/packages/output"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <fileA> <fileB>",
	Short: "Compare the effective configurations of two experiments",
	Long: `Resolve two experiment files and show every field whose effective
value differs. Useful for checking what actually changed between two
variants of a run.

Examples:
  tractconf diff experiments/TractSeg_All_125mm.yaml experiments/DmReg_12g90g270g_125mm_DAugAll.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: diffCommand,
}

func diffCommand(cmd *cobra.Command, args []string) error {
	a, err := experiment.Load(args[0])
	if err != nil {
		return err
	}
	b, err := experiment.Load(args[1])
	if err != nil {
		return err
	}

	cfgA, err := a.Resolve()
	if err != nil {
		return err
	}
	cfgB, err := b.Resolve()
	if err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
	formatter.FormatDiff(a.Name, b.Name, config.Diff(cfgA, cfgB))
	return nil
}
