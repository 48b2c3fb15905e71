package cmd

import (
	"errors"
	"fmt"
	"strings"

	"spotlogin/internal/cli"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		limit int
		pick  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for an artist and show its details",
		Long: `Log in, search Spotify for artists matching the query and show the details
and top tracks of the one you pick.

Examples:
  spotlogin search "daft punk"
  spotlogin search radiohead --pick 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if limit < 1 || limit > 50 {
				return fmt.Errorf("--limit must be between 1 and 50, got %d", limit)
			}

			client, err := authenticate(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			artists, err := client.SearchArtists(cmd.Context(), query, limit)
			if err != nil {
				return explainAPIError(err)
			}

			out := cmd.OutOrStdout()
			cli.PrintArtists(out, artists)
			if len(artists) == 0 {
				return nil
			}

			index, err := selectArtist(cmd, pick, len(artists))
			if errors.Is(err, cli.ErrSelectionCancelled) {
				return nil
			}
			if err != nil {
				return err
			}

			details, err := client.ArtistDetails(cmd.Context(), artists[index].ID)
			if err != nil {
				return explainAPIError(err)
			}

			cli.PrintArtistDetails(out, details)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of artists to list (1-50)")
	cmd.Flags().IntVar(&pick, "pick", 0, "Pick the Nth result without prompting")

	return cmd
}

// selectArtist returns the 0-based index chosen with --pick or interactively.
func selectArtist(cmd *cobra.Command, pick, n int) (int, error) {
	if pick != 0 {
		return cli.ParseSelection(fmt.Sprint(pick), n)
	}
	return cli.Select(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Select an artist [1-%d]: ", n), n)
}
