// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mediarelay/internal/config"
	"mediarelay/internal/logging"
)

// Global flags
var (
	flagConfig     string
	flagListen     string
	flagPort       string
	flagPublicURL  string
	flagBrowserTLS bool
	flagLogJSON    bool
	flagDebug      bool
)

// cfg holds the loaded configuration (merged: defaults < config file < PORT < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mediarelay",
	Short: "Browser-impersonating media download proxy",
	Long: `mediarelay fronts a short-video lookup service and a music search/download
service, relaying their media to clients as attachments.

Run without a subcommand to start the HTTP server.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/mediarelay/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagListen, "listen", "", "Listen address (default: all interfaces)")
	rootCmd.PersistentFlags().StringVarP(&flagPort, "port", "p", "", "Listen port (default: 5000 or $PORT)")
	rootCmd.PersistentFlags().StringVar(&flagPublicURL, "public-url", "", "External base URL used in download links")
	rootCmd.PersistentFlags().BoolVar(&flagBrowserTLS, "browser-tls", false, "Use a Chrome TLS fingerprint for upstream calls")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < PORT < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagPublicURL != "" {
		cfg.PublicURL = flagPublicURL
	}
	if flagBrowserTLS {
		cfg.BrowserTLS = true
	}
	if flagLogJSON {
		cfg.LogJSON = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(cfg)
	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		logrus.Debugf(format, args...)
	}
}
