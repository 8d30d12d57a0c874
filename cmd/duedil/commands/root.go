package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "duedil",
	Short: "duedil - corporate credit risk assessment",
	Long: `duedil CLI

Altman Z-Score based bankruptcy risk assessment with news risk
intelligence and PDF memo generation.

Usage:
  go run ./cmd/duedil [command]

Examples:
  go run ./cmd/duedil analyze AAPL MSFT
  go run ./cmd/duedil analyze F --shock 25 --pdf
  go run ./cmd/duedil api
  go run ./cmd/duedil watch`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
