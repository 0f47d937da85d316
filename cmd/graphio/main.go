package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphio/graphio-go/cmd/graphio/commands"
	"github.com/graphio/graphio-go/logger"
)

var rootCmd = &cobra.Command{
	Use:   "graphio",
	Short: "GraphIO - ontology service client",
	Long: `GraphIO - command line client for the GraphIO ontology service.

Available commands:
  types   - Inspect object types and their fields
  query   - Run a select query against an object type
  config  - Show the effective client configuration
  version - Show version information

Examples:
  graphio types get Employee           # Show the Employee object type
  graphio types fields Employee        # List its declared fields
  graphio query Employee --limit 10    # Fetch ten Employee rows
  graphio config show                  # Show effective configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.TypesCmd)
	rootCmd.AddCommand(commands.QueryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
