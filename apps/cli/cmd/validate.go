package cmd

import (
	"fmt"
	"os"

	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/POE21L/tractconf/packages/output"
	"github.com/POE21L/tractconf/packages/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate experiment files",
	Long: `Resolve each experiment and check the effective configuration
against the schema and the semantic rules.

Examples:
  tractconf validate experiments/DmReg_12g90g270g_125mm_DAugAll.yaml
  tractconf validate experiments/`,
	Args: cobra.ExactArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectExperiments(args[0])
	if err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)

	hasErrors := false
	for _, f := range files {
		cfg, err := f.Resolve()
		if err != nil {
			formatter.FormatViolations(f.Name, []schema.Violation{{Message: err.Error()}})
			hasErrors = true
			continue
		}
		violations, err := schema.Validate(cfg)
		if err != nil {
			return err
		}
		formatter.FormatViolations(f.Name, violations)
		if len(violations) > 0 {
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// collectExperiments loads one file or every experiment file in a directory.
func collectExperiments(path string) ([]*experiment.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		files, err := experiment.LoadDir(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no experiment files found in %s", path)
		}
		return files, nil
	}
	f, err := experiment.Load(path)
	if err != nil {
		return nil, err
	}
	return []*experiment.File{f}, nil
}
