package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/POE21L/tractconf/packages/core/experiment"
	"github.com/POE21L/tractconf/packages/output"
	"github.com/spf13/cobra"
)

var (
	showOutputFlag string
	showSetFlag    []string
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the effective configuration of an experiment",
	Long: `Resolve an experiment file against its base preset and print the
effective configuration. Fields the file overrides are marked.

Examples:
  tractconf show experiments/DmReg_12g90g270g_125mm_DAugAll.yaml
  tractconf show experiments/DmReg_12g90g270g_125mm_DAugAll.yaml --output json
  tractconf show experiments/DmReg_12g90g270g_125mm_DAugAll.yaml --set NumEpochs=300`,
	Args: cobra.ExactArgs(1),
	RunE: showCommand,
}

func init() {
	showCmd.Flags().StringVarP(&showOutputFlag, "output", "o", "console", "Output format: console, json")
	showCmd.Flags().StringArrayVar(&showSetFlag, "set", nil, "Override a field on top of the resolved config (Field=value)")
}

func showCommand(cmd *cobra.Command, args []string) error {
	f, err := experiment.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := f.Resolve()
	if err != nil {
		return err
	}

	for _, kv := range showSetFlag {
		key, val, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid --set %q, expected Field=value", kv)
		}
		if err := cfg.Set(key, val); err != nil {
			return err
		}
	}

	if strings.ToLower(showOutputFlag) == "json" {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)
	formatter.FormatConfig(cfg, f.OverriddenFields())
	return nil
}
