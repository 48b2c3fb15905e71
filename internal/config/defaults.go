package config

import "time"

const (
	// DefaultAuthURL is the Spotify accounts authorization endpoint.
	DefaultAuthURL = "https://accounts.spotify.com/authorize"

	// DefaultTokenURL is the Spotify accounts token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultAPIURL is the base URL of the Spotify Web API.
	DefaultAPIURL = "https://api.spotify.com/v1"

	// DefaultRedirectURI matches the redirect registered for local development.
	DefaultRedirectURI = "http://localhost:4000/callback"

	// DefaultCallbackPort is used for redirect URIs without an explicit port.
	DefaultCallbackPort = 4000

	// DefaultCallbackTimeout is how long to wait for the browser redirect.
	DefaultCallbackTimeout = 5 * time.Minute

	// DefaultScopeSeparator joins scopes in the authorization URL.
	DefaultScopeSeparator = " "

	// DefaultMarket is used for market-dependent lookups such as top tracks.
	DefaultMarket = "US"
)

// DefaultScopes are requested when no scopes are configured.
var DefaultScopes = []string{"user-read-private", "user-read-email"}

// GetDefaultConfig returns the default configuration for spotlogin.
// Credentials have no defaults and must come from config.yaml or the environment.
func GetDefaultConfig() Config {
	return Config{
		RedirectURI:         DefaultRedirectURI,
		Scopes:              append([]string(nil), DefaultScopes...),
		CallbackTimeout:     DefaultCallbackTimeout,
		DefaultCallbackPort: DefaultCallbackPort,
		Provider: ProviderConfig{
			AuthURL:        DefaultAuthURL,
			TokenURL:       DefaultTokenURL,
			APIURL:         DefaultAPIURL,
			ScopeSeparator: DefaultScopeSeparator,
			Market:         DefaultMarket,
		},
	}
}
