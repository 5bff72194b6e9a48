package main

import (
	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "taabir",
	Short: "Arabic dream-interpretation article pipeline",
	Long: `Taabir generates and polishes Arabic dream-interpretation articles.

The pipeline includes:
  - Outline generation with deterministic heading enforcement
  - Draft, review, balance, and human-touch rewrite stages
  - Meta/FAQ generation with schema.org JSON-LD output
  - Heuristic quality reports and an LLM editorial gate
  - DOCX, PDF, and ePub export`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.taabir/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "taabir home directory (default: ~/.taabir)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
