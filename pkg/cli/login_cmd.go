package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd(newClient func() *Client) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Long:  "Exchange email and password for a bearer token. Export it as SCHEMACAT_TOKEN for the other commands.",
		Example: `  # Log in and capture the token
  export SCHEMACAT_TOKEN=$(schemacat login --email me@example.com --password secret)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp struct {
				Token string `json:"token"`
				User  struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				} `json:"user"`
			}
			body := map[string]string{"email": email, "password": password}
			if err := newClient().Post(cmd.Context(), "/api/v1/auth/login", body, &resp); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, resp)
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
