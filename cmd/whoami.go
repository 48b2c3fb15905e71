package cmd

import (
	"spotlogin/internal/cli"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Log in and show your Spotify profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authenticate(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			user, err := client.CurrentUser(cmd.Context())
			if err != nil {
				return explainAPIError(err)
			}

			cli.PrintUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
