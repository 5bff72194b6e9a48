package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/pipeline"
)

var enforceSymbol string

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Offline outline tools",
}

// enforceCmd runs the heading enforcement engine locally, without a server
// or an API key.
var enforceCmd = &cobra.Command{
	Use:   "enforce [file]",
	Short: "Repair an outline's required headings (no server needed)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		fmt.Println(pipeline.EnforceOutline(string(data), enforceSymbol))
		return nil
	},
}

func init() {
	enforceCmd.Flags().StringVar(&enforceSymbol, "symbol", "", "Dream symbol the outline covers")
	enforceCmd.MarkFlagRequired("symbol")

	outlineCmd.AddCommand(enforceCmd)
	rootCmd.AddCommand(outlineCmd)
}
