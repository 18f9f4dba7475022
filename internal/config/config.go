// Package config handles TOML-based configuration loading and validation.
// Defaults are overridden by the config file, then by the PORT environment
// variable, then by CLI flags (applied by the caller).
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Listen                 string   `toml:"listen"`
	Port                   string   `toml:"port"`
	PublicURL              string   `toml:"public_url"`
	ShortVideoBase         string   `toml:"short_video_base"`
	MusicBase              string   `toml:"music_base"`
	FilenameMaxLength      int      `toml:"filename_max_length"`
	BrowserTLS             bool     `toml:"browser_tls"`
	UpstreamTimeoutSeconds int      `toml:"upstream_timeout_seconds"`
	CORSOrigins            []string `toml:"cors_origins"`
	LogLevel               string   `toml:"log_level"`
	LogJSON                bool     `toml:"log_json"`
	Debug                  bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:            "",
		Port:              "5000",
		ShortVideoBase:    "https://ttsave.app",
		MusicBase:         "https://spotdown.org",
		FilenameMaxLength: 50,
		CORSOrigins:       []string{"*"},
		LogLevel:          "info",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mediarelay"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mediarelay"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path (or the default location when path is
// empty) and merges it with defaults. A missing default file is not an error;
// a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	for name, base := range map[string]string{
		"short_video_base": c.ShortVideoBase,
		"music_base":       c.MusicBase,
	} {
		if err := validateBase(base); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.PublicURL != "" {
		if err := validateBase(c.PublicURL); err != nil {
			return fmt.Errorf("public_url: %w", err)
		}
	}

	if c.FilenameMaxLength < 0 {
		return fmt.Errorf("filename_max_length cannot be negative")
	}
	if c.UpstreamTimeoutSeconds < 0 {
		return fmt.Errorf("upstream_timeout_seconds cannot be negative")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("unsupported log level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Listen + ":" + c.Port
}

func validateBase(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
