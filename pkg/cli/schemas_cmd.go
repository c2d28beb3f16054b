package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

type logicalFieldView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}

type schemaView struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Version     string             `json:"version,omitempty"`
	Fields      []logicalFieldView `json:"logicalFields,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func newSchemasCmd(newClient func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schemas",
		Aliases: []string{"schema"},
		Short:   "Inspect logical schemas",
	}

	cmd.AddCommand(newSchemasListCmd(newClient))
	cmd.AddCommand(newSchemasGetCmd(newClient))
	return cmd
}

func newSchemasListCmd(newClient func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List logical schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var list []schemaView
			if err := newClient().Get(cmd.Context(), "/api/v1/schemas", &list); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, list)
			}
			rows := make([][]string, 0, len(list))
			for _, s := range list {
				rows = append(rows, []string{
					s.ID, s.Name, s.Version,
					strconv.Itoa(len(s.Fields)),
					s.CreatedAt.Format(time.RFC3339),
				})
			}
			return printTable(os.Stdout, []string{"ID", "NAME", "VERSION", "FIELDS", "CREATED"}, rows)
		},
	}
}

func newSchemasGetCmd(newClient func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <schema-id>",
		Short: "Show one schema with its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var s schemaView
			if err := newClient().Get(cmd.Context(), "/api/v1/schemas/"+args[0], &s); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, s)
			}
			rows := make([][]string, 0, len(s.Fields))
			for _, f := range s.Fields {
				rows = append(rows, []string{f.ID, f.Name, f.DataType})
			}
			return printTable(os.Stdout, []string{"ID", "FIELD", "TYPE"}, rows)
		},
	}
}
