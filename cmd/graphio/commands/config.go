package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphio/graphio-go/config"
)

// ConfigCmd groups configuration commands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage GraphIO client configuration",
	Long: `Display the effective GraphIO client configuration.

Configuration sources (in order of precedence):
1. Environment variables (GRAPHIO_* prefix, plus ONTOLOGY_SERVICE and RABBITMQ_*)
2. Config file passed to the SDK
3. Default values`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Redact before printing
	shown := *cfg
	if shown.MQ.Password != "" {
		shown.MQ.Password = "********"
	}

	out, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
