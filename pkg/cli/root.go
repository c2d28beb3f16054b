// Package cli implements the schemacat command-line client.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]any{"error": err.Error()}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				errObj["http_status"] = apiErr.HTTPStatus
				errObj["code"] = apiErr.Code
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host   string
		token  string
		output string
	)

	rootCmd := &cobra.Command{
		Use:           "schemacat",
		Short:         "Schema catalog CLI",
		Long:          "Command-line client for the schema catalog API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Precedence: flag > env > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("SCHEMACAT_HOST"); v != "" {
					host = v
				}
			}
			if !cmd.Flags().Changed("token") {
				if v := os.Getenv("SCHEMACAT_TOKEN"); v != "" {
					token = v
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("SCHEMACAT_OUTPUT"); v != "" {
					output = v
				}
			}
			if err := validateHostURL(host); err != nil {
				return err
			}
			return validateOutputFormat(output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	newClient := func() *Client { return NewClient(host, token) }

	rootCmd.AddCommand(newLoginCmd(newClient))
	rootCmd.AddCommand(newIntegrationsCmd(newClient))
	rootCmd.AddCommand(newSchemasCmd(newClient))
	rootCmd.AddCommand(newQueryCmd(newClient))

	return rootCmd
}
