package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type integrationView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Strategy  string    `json:"strategy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type collectionView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type discoveryResultView struct {
	Success            bool   `json:"success"`
	CollectionsCreated int    `json:"collectionsCreated"`
	FieldsCreated      int    `json:"fieldsCreated"`
	Error              string `json:"error,omitempty"`
}

func newIntegrationsCmd(newClient func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "integrations",
		Aliases: []string{"integration"},
		Short:   "Manage vendor integrations",
	}

	cmd.AddCommand(newIntegrationsListCmd(newClient))
	cmd.AddCommand(newIntegrationsCollectionsCmd(newClient))
	cmd.AddCommand(newIntegrationsDiscoverCmd(newClient))
	return cmd
}

func newIntegrationsListCmd(newClient func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your integrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var list []integrationView
			if err := newClient().Get(cmd.Context(), "/api/v1/integrations", &list); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, list)
			}
			rows := make([][]string, 0, len(list))
			for _, in := range list {
				rows = append(rows, []string{
					in.ID, in.Name, in.Type, in.Strategy,
					fmt.Sprintf("%t", in.IsActive),
					in.CreatedAt.Format(time.RFC3339),
				})
			}
			return printTable(os.Stdout, []string{"ID", "NAME", "TYPE", "STRATEGY", "ACTIVE", "CREATED"}, rows)
		},
	}
}

func newIntegrationsCollectionsCmd(newClient func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "collections <integration-id>",
		Short: "List the collections discovered for an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []collectionView
			path := "/api/v1/integrations/" + args[0] + "/collections"
			if err := newClient().Get(cmd.Context(), path, &list); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, list)
			}
			rows := make([][]string, 0, len(list))
			for _, c := range list {
				rows = append(rows, []string{c.ID, c.Name, c.CreatedAt.Format(time.RFC3339)})
			}
			return printTable(os.Stdout, []string{"ID", "NAME", "CREATED"}, rows)
		},
	}
}

func newIntegrationsDiscoverCmd(newClient func() *Client) *cobra.Command {
	var (
		fields         bool
		maxCollections int
	)

	cmd := &cobra.Command{
		Use:   "discover <integration-id>",
		Short: "Re-run discovery for an integration",
		Example: `  # Collections only
  schemacat integrations discover 0198a7f2 --fields=false

  # Collections plus fields for the 5 newest collections
  schemacat integrations discover 0198a7f2 --max-collections 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"discoverFields": fields,
				"maxCollections": maxCollections,
			}
			var result discoveryResultView
			path := "/api/v1/integrations/" + args[0] + "/discover"
			if err := newClient().Post(cmd.Context(), path, body, &result); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}
			if !result.Success {
				fmt.Fprintf(os.Stdout, "discovery failed: %s\n", result.Error)
				return nil
			}
			fmt.Fprintf(os.Stdout, "discovered %d collections, %d fields\n",
				result.CollectionsCreated, result.FieldsCreated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fields, "fields", true, "Also discover fields for the newest collections")
	cmd.Flags().IntVar(&maxCollections, "max-collections", 0, "Cap on collections examined for fields (0 = server default)")

	return cmd
}
