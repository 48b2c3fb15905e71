package cmd

import (
	"fmt"

	"spotlogin/internal/provider"
	"spotlogin/pkg/logging"
)

// explainAPIError adds a hint to Web API errors the user can act on. The
// returned error still wraps err.
func explainAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case provider.IsUnauthorized(err):
		logging.Error("Provider", err, "Spotify rejected the access token")
		return fmt.Errorf("%w (access token rejected, run the command again to log in)", err)
	case provider.IsRateLimited(err):
		logging.Warn("Provider", "Spotify rate limit reached")
		return fmt.Errorf("%w (rate limited by Spotify, try again later)", err)
	default:
		return err
	}
}
