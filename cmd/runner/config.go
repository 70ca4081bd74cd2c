package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the runner configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after the search order
(--config, ~/.runner/configs/runner.yaml, ./configs/runner.yaml, embedded
defaults) and the --difficulty preset have been applied.

Examples:
  runner config dump > ~/.runner/configs/runner.yaml
  runner config dump --difficulty hard`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatalf("%v", err)
		}
		data, err := cfg.Marshal()
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Print(string(data))
	},
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the embedded default configuration",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(string(config.DefaultRunnerYAML()))
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configDefaultsCmd)
}
