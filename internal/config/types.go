package config

import (
	"slices"
	"time"
)

// Config is the top-level configuration structure for spotlogin.
type Config struct {
	ClientID     string   `yaml:"clientId,omitempty" env:"SPOTLOGIN_CLIENT_ID"`
	ClientSecret string   `yaml:"clientSecret,omitempty" env:"SPOTLOGIN_CLIENT_SECRET"`
	RedirectURI  string   `yaml:"redirectUri,omitempty" env:"SPOTLOGIN_REDIRECT_URI"`
	Scopes       []string `yaml:"scopes,omitempty" env:"SPOTLOGIN_SCOPES" envSeparator:","`

	// CallbackTimeout bounds how long the CLI waits for the browser redirect.
	CallbackTimeout time.Duration `yaml:"callbackTimeout,omitempty" env:"SPOTLOGIN_CALLBACK_TIMEOUT"`

	// DefaultCallbackPort is used when the redirect URI has no explicit port.
	// Zero disables the fallback.
	DefaultCallbackPort int `yaml:"defaultCallbackPort,omitempty" env:"SPOTLOGIN_DEFAULT_CALLBACK_PORT"`

	Provider ProviderConfig `yaml:"provider,omitempty"`
}

// ProviderConfig holds the provider endpoints and conventions.
type ProviderConfig struct {
	AuthURL  string `yaml:"authUrl,omitempty" env:"SPOTLOGIN_AUTH_URL"`
	TokenURL string `yaml:"tokenUrl,omitempty" env:"SPOTLOGIN_TOKEN_URL"`
	APIURL   string `yaml:"apiUrl,omitempty" env:"SPOTLOGIN_API_URL"`

	// ScopeSeparator joins scopes in the authorization URL.
	ScopeSeparator string `yaml:"scopeSeparator,omitempty" env:"SPOTLOGIN_SCOPE_SEPARATOR"`

	// Market is the ISO 3166-1 country used for market-dependent lookups.
	Market string `yaml:"market,omitempty" env:"SPOTLOGIN_MARKET"`
}

// OAuthClientConfig is the immutable input of the authorization code flow.
// Use Config.OAuthClient to build one; the Scopes slice is never shared with
// the Config it came from.
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	AuthURL        string
	TokenURL       string
	ScopeSeparator string

	DefaultCallbackPort int
	CallbackTimeout     time.Duration
}

// OAuthClient derives the OAuth client configuration from c.
func (c Config) OAuthClient() OAuthClientConfig {
	sep := c.Provider.ScopeSeparator
	if sep == "" {
		sep = DefaultScopeSeparator
	}

	return OAuthClientConfig{
		ClientID:            c.ClientID,
		ClientSecret:        c.ClientSecret,
		RedirectURI:         c.RedirectURI,
		Scopes:              slices.Clone(c.Scopes),
		AuthURL:             c.Provider.AuthURL,
		TokenURL:            c.Provider.TokenURL,
		ScopeSeparator:      sep,
		DefaultCallbackPort: c.DefaultCallbackPort,
		CallbackTimeout:     c.CallbackTimeout,
	}
}
