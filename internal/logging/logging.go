// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"mediarelay/internal/config"
)

// Setup applies level and format from cfg to the standard logrus logger.
// Debug in cfg forces the debug level regardless of log_level.
func Setup(cfg *config.Config) {
	Configure(logrus.StandardLogger(), cfg, os.Stderr)
}

// Configure applies cfg to logger, writing to out.
func Configure(logger *logrus.Logger, cfg *config.Config, out io.Writer) {
	logger.SetOutput(out)

	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isTerminal(out),
			DisableColors: !isTerminal(out),
		})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
