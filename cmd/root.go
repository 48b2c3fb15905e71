package cmd

import (
	"os"
	"time"

	"spotlogin/internal/oauth"
	"spotlogin/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments, API errors).
	ExitCodeError = 1
	// ExitCodeAuthFailed indicates the OAuth flow failed.
	ExitCodeAuthFailed = 3
)

// Global flags shared by every command.
var (
	configPath      string
	debug           bool
	logLevel        string
	quiet           bool
	callbackTimeout time.Duration
)

// rootCmd represents the base command for the spotlogin application.
var rootCmd = &cobra.Command{
	Use:   "spotlogin",
	Short: "Log in to Spotify from the terminal",
	Long: `spotlogin authenticates you against the Spotify Web API using the OAuth2
authorization code flow. It opens the authorization page in your browser and
receives the redirect on a short-lived local listener.

Once logged in it can show your profile and search for artists.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRunE: initLogging,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "spotlogin version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// initLogging configures pkg/logging from --log-level and --debug.
func initLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}
	if debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	return nil
}

// getExitCode determines the appropriate exit code based on the error type.
// Failures of the OAuth flow get their own code; API errors after login do not.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if oauth.IsAuthenticationError(err) {
		return ExitCodeAuthFailed
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", defaultConfigPath(), "Directory containing config.yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().DurationVar(&callbackTimeout, "timeout", 0, "How long to wait for the browser authorization (default from config, 5m)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSearchCmd())
}
