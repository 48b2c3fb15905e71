// Package config provides configuration management for spotlogin.
//
// Configuration is loaded from a single directory. The default directory is
// ~/.config/spotlogin, and a custom one can be selected with the --config-path
// flag.
//
// # Sources
//
// Values are resolved in this order, later sources winning:
//
//  1. Built-in defaults (Spotify endpoints, default scopes, 5 minute callback timeout)
//  2. config.yaml in the configuration directory
//  3. SPOTLOGIN_* environment variables
//
// Client credentials are normally supplied through the environment:
//
//	export SPOTLOGIN_CLIENT_ID=...
//	export SPOTLOGIN_CLIENT_SECRET=...
//	export SPOTLOGIN_REDIRECT_URI=http://localhost:4000/callback
//
// # OAuth Client Configuration
//
// The OAuth flow never reads the environment itself. Callers resolve a Config
// once at startup, validate it, and hand the derived OAuthClientConfig value to
// the flow coordinator.
package config
