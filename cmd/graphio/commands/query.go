package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/graphio/graphio-go/ontology"
)

// QueryCmd runs a select query against one object type
var QueryCmd = &cobra.Command{
	Use:   "query <type>",
	Short: "Run a select query against an object type",
	Long: `Run a select query against an object type and print the rows.

Examples:
  graphio query Employee                         # All fields, all rows
  graphio query Employee --select name,age       # Two fields
  graphio query Employee --limit 10              # Cap the result
  graphio query Employee --format json           # Raw JSON rows`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	querySelect []string
	queryLimit  int
	queryFormat string
)

func init() {
	QueryCmd.Flags().StringSliceVar(&querySelect, "select", nil, "Fields to select (default: all declared fields)")
	QueryCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum number of rows (0 = no limit)")
	QueryCmd.Flags().StringVar(&queryFormat, "format", "table", "Output format: table, json")
}

func runQuery(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	handle, err := client.Ontology.LoadObjectTypeByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	query := handle.Select(querySelect...)
	if queryLimit > 0 {
		query = query.Limit(queryLimit)
	}

	rows, err := query.Execute(cmd.Context())
	if err != nil {
		return err
	}

	if queryFormat == "json" {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(rows) == 0 {
		pterm.Info.Println("No rows")
		return nil
	}

	columns := tableColumns(rows, querySelect, handle.Fields())
	data := pterm.TableData{columns}
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, column := range columns {
			if value, ok := row[column]; ok {
				line[i] = fmt.Sprintf("%v", value)
			}
		}
		data = append(data, line)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Success.Printf("%d rows\n", len(rows))
	return nil
}

// tableColumns picks the column order: explicit selection first, then the
// declared fields, then whatever else the rows carry
func tableColumns(rows []ontology.Row, selected, declared []string) []string {
	var columns []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}

	for _, name := range selected {
		add(name)
	}
	if len(selected) == 0 {
		for _, name := range declared {
			add(name)
		}
	}

	var extra []string
	for _, row := range rows {
		for name := range row {
			if !seen[name] {
				seen[name] = true
				extra = append(extra, name)
			}
		}
	}
	sort.Strings(extra)
	return append(columns, extra...)
}
