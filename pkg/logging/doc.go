// Package logging provides subsystem-tagged structured logging for spotlogin.
//
// It is a thin layer over log/slog. Every entry carries a subsystem attribute
// so that output from the callback listener, the flow coordinator and the CLI
// can be told apart when --debug is enabled.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Flow", "Waiting for the OAuth callback on %s", addr)
//	logging.Warn("Browser", "Could not open browser: %v", err)
//	logging.Error("Provider", err, "Search failed")
//
// Components that take a *slog.Logger, such as the OAuth flow, can be given
// a subsystem logger:
//
//	logger := logging.Logger("OAuth")
//
// Log output goes to stderr by default so that command output on stdout stays
// pipeable.
package logging
