package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize spotlogin with your Spotify account",
		Long: `Run the OAuth2 authorization code flow against Spotify.

A local listener is started on the configured redirect URI, your browser is
opened on the authorization page and the returned code is exchanged for an
access token. The token is not stored.

Examples:
  spotlogin login
  spotlogin login --timeout 2m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authenticate(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			user, err := client.CurrentUser(cmd.Context())
			if err != nil {
				return explainAPIError(err)
			}

			name := user.DisplayName
			if name == "" {
				name = user.ID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s\n", text.FgGreen.Sprint("✓"), name)
			return nil
		},
	}
}
