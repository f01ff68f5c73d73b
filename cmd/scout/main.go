package main

import (
	"os"

	"scout/cmd/scout/brief"
	"scout/cmd/scout/gateway"
	"scout/cmd/scout/research"
	"scout/cmd/scout/runs"
	"scout/cmd/scout/setup"
	"scout/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.Init()
	rootCmd := &cobra.Command{
		Use:   "scout",
		Short: "Scout is a research and pre-sales agent",
		Long: `Scout builds research prompts, resolves an execution budget from the
requested depth and the runtime mode (SCOUT_MODE), hands the run to a
vendor-hosted agent loop, and renders the result as a Markdown report.`,
	}

	rootCmd.AddCommand(research.Cmd)
	rootCmd.AddCommand(brief.Cmd)
	rootCmd.AddCommand(runs.Cmd)
	rootCmd.AddCommand(gateway.Cmd)
	rootCmd.AddCommand(setup.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
