package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// TypesCmd groups object type inspection commands
var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Inspect ontology object types",
	Long: `Inspect ontology object types registered in the schema service.

Examples:
  graphio types get Employee       # Show id, name and fields
  graphio types fields Employee    # List the declared field names`,
}

var typesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show an object type",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypesGet,
}

var typesFieldsCmd = &cobra.Command{
	Use:   "fields <name>",
	Short: "List an object type's declared fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypesFields,
}

var typesFormat string

func init() {
	typesGetCmd.Flags().StringVar(&typesFormat, "format", "table", "Output format: table, json")

	TypesCmd.AddCommand(typesGetCmd)
	TypesCmd.AddCommand(typesFieldsCmd)
}

func runTypesGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	handle, err := client.Ontology.LoadObjectTypeByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if typesFormat == "json" {
		out, err := json.MarshalIndent(map[string]any{
			"id":     handle.ID(),
			"name":   handle.Name(),
			"fields": handle.Fields(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	data := pterm.TableData{{"ID", "Name", "Fields"}}
	data = append(data, []string{handle.ID(), handle.Name(), fmt.Sprintf("%d", len(handle.Fields()))})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runTypesFields(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	handle, err := client.Ontology.LoadObjectTypeByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fields := handle.Fields()
	if len(fields) == 0 {
		pterm.Info.Printf("%s declares no fields\n", handle.Name())
		return nil
	}
	for _, field := range fields {
		fmt.Println(field)
	}
	return nil
}
