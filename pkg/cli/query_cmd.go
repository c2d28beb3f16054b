package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type translatedQueryView struct {
	CollectionID    string            `json:"collectionId"`
	CollectionName  string            `json:"collectionName"`
	IntegrationType string            `json:"integrationType"`
	Query           string            `json:"query"`
	FieldMappings   map[string]string `json:"fieldMappings"`
}

type fanOutResultView struct {
	Queries          []translatedQueryView `json:"queries"`
	TotalCollections int                   `json:"totalCollections"`
}

func newQueryCmd(newClient func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Compile logical queries",
	}

	cmd.AddCommand(newQueryConvertCmd(newClient))
	return cmd
}

func newQueryConvertCmd(newClient func() *Client) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a query AST into native backend queries",
		Long:  "Read a query AST as JSON and print the native query compiled for every mapped collection.",
		Example: `  # From a file
  schemacat query convert --file ast.json

  # From stdin
  cat ast.json | schemacat query convert --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src io.Reader
			if file == "-" {
				src = cmd.InOrStdin()
			} else {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open AST file: %w", err)
				}
				defer f.Close()
				src = f
			}

			var ast json.RawMessage
			if err := json.NewDecoder(src).Decode(&ast); err != nil {
				return fmt.Errorf("parse AST JSON: %w", err)
			}

			var result fanOutResultView
			if err := newClient().Post(cmd.Context(), "/api/v1/query/convert", ast, &result); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}
			rows := make([][]string, 0, len(result.Queries))
			for _, q := range result.Queries {
				rows = append(rows, []string{q.CollectionName, q.IntegrationType, q.Query})
			}
			return printTable(os.Stdout, []string{"COLLECTION", "TYPE", "QUERY"}, rows)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Path to the AST JSON file ('-' for stdin)")

	return cmd
}
