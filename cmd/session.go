package cmd

import (
	"context"
	"fmt"
	"io"

	"spotlogin/internal/cli"
	"spotlogin/internal/config"
	"spotlogin/internal/oauth"
	"spotlogin/internal/provider"
	"spotlogin/pkg/logging"

	"github.com/jedib0t/go-pretty/v6/text"
)

const appName = "spotlogin"

// defaultConfigPath falls back to the working directory when the home
// directory cannot be determined.
func defaultConfigPath() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return "."
	}
	return path
}

// loadConfig resolves and validates the configuration, applying the --timeout
// override.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if callbackTimeout > 0 {
		cfg.CallbackTimeout = callbackTimeout
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newFlow wires the OAuth flow to the Spotify client.
func newFlow(cfg config.Config, errOut io.Writer) *oauth.Flow[*provider.Client] {
	clientCfg := cfg.OAuthClient()

	newSession := provider.NewSessionFactory(
		provider.WithBaseURL(cfg.Provider.APIURL),
		provider.WithMarket(cfg.Provider.Market),
		provider.WithLogger(logging.Logger("Provider")),
	)

	return oauth.NewFlow(clientCfg, provider.OAuth2Config(clientCfg), newSession,
		oauth.WithAppName[*provider.Client](appName),
		oauth.WithLogger[*provider.Client](logging.Logger("OAuth")),
		oauth.WithURLNotifier[*provider.Client](urlPrinter(errOut, quiet)),
		oauth.WithWaitHook[*provider.Client](cli.WaitSpinner(errOut, "Waiting for browser authorization...", quiet)),
	)
}

// urlPrinter prints the authorization URL so the user can open it manually.
// The URL is printed even when quiet; quiet only drops the surrounding text.
func urlPrinter(w io.Writer, quiet bool) func(url string) {
	return func(url string) {
		if quiet {
			fmt.Fprintln(w, url)
			return
		}
		fmt.Fprintf(w, "Opening your browser to authorize %s.\nIf it does not open, visit:\n\n  %s\n\n",
			appName, text.FgHiBlue.Sprint(url))
	}
}

// authenticate loads the configuration and runs the login flow.
func authenticate(ctx context.Context, errOut io.Writer) (*provider.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := newFlow(cfg, errOut).Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return client, nil
}
