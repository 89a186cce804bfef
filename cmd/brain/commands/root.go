package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brain",
	Short: "Pentosh1 daily market context generator",
	Long: `Pentosh1 Daily Context Brain

Aggregates macro and crypto indicators across four layers (global
liquidity, crypto flows, market structure, sentiment) and derives the
daily trading signal vector.

Usage:
  go run ./cmd/brain [command]

Examples:
  go run ./cmd/brain context generate
  go run ./cmd/brain context show 2024-11-02
  go run ./cmd/brain scheduler start
  go run ./cmd/brain api
  go run ./cmd/brain status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
