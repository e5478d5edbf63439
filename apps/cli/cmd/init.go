package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/POE21L/tractconf/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	initBaseFlag         string
	initDirFlag          string
	initForceFlag        bool
	initModelVariantFlag bool
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new experiment file",
	Long: `Create a new experiment file. The file name becomes the
experiment name, so pick it the way you want the run to show up in logs
and artifact directories.

Examples:
  tractconf init DmReg_12g90g270g_125mm_DAugAll --base dm_regression
  tractconf init TractSeg_test --dir experiments/ --force`,
	Args: cobra.ExactArgs(1),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().StringVar(&initBaseFlag, "base", "tract_seg", "Base preset for the new experiment")
	initCmd.Flags().StringVar(&initDirFlag, "dir", ".", "Directory to create the file in")
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().BoolVar(&initModelVariantFlag, "model-variant", false,
		"Include the dormant deep-supervision model variant as comments")
}

func initCommand(cmd *cobra.Command, args []string) error {
	name := args[0]
	if strings.Contains(name, ".") {
		return fmt.Errorf("experiment name must not contain a dot: %s", name)
	}
	if _, err := config.Preset(initBaseFlag); err != nil {
		return err
	}

	path := filepath.Join(initDirFlag, name+".yaml")
	if !initForceFlag {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Experiment %s.\n", name)
	fmt.Fprintf(&b, "base: %s\n\n", initBaseFlag)
	fmt.Fprintf(&b, "num_epochs: 250\ndata_augmentation: false\n")
	if initModelVariantFlag {
		fmt.Fprintf(&b, "\n# model: UNet_DeepSup\n# classes: AutoPTX\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to create experiment file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	return nil
}
