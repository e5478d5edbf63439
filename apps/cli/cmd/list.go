package cmd

import (
	"fmt"
	"sort"

	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <directory>",
	Short: "List experiments in a directory",
	Long: `List the experiments defined in a directory, with their base
preset and the fields each one overrides.

Examples:
  tractconf list experiments/`,
	Args: cobra.ExactArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := experiment.LoadDir(args[0])
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no experiment files found in %s", args[0])
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "%-40s base=%s\n", f.Name, f.Base)
		overridden := f.OverriddenFields()
		fields := make([]string, 0, len(overridden))
		for field := range overridden {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %v\n", field, f.Override.Get(field))
		}
	}

	return nil
}
