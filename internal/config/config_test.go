package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != "5000" {
		t.Errorf("default port = %q, want 5000", cfg.Port)
	}
	if cfg.FilenameMaxLength != 50 {
		t.Errorf("default filename_max_length = %d, want 50", cfg.FilenameMaxLength)
	}
	if cfg.ShortVideoBase != "https://ttsave.app" {
		t.Errorf("default short_video_base = %q", cfg.ShortVideoBase)
	}
	if cfg.BrowserTLS {
		t.Error("browser_tls should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"ftp base", func(c *Config) { c.MusicBase = "ftp://spotdown.org" }, true},
		{"base without host", func(c *Config) { c.ShortVideoBase = "https://" }, true},
		{"http base allowed", func(c *Config) { c.MusicBase = "http://127.0.0.1:9000" }, false},
		{"bad public url", func(c *Config) { c.PublicURL = "example.com" }, true},
		{"negative filename length", func(c *Config) { c.FilenameMaxLength = -1 }, true},
		{"truncation disabled", func(c *Config) { c.FilenameMaxLength = 0 }, false},
		{"negative timeout", func(c *Config) { c.UpstreamTimeoutSeconds = -5 }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper-case log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("PORT", "")

	content := `
port = "8081"
music_base = "http://127.0.0.1:9999"
filename_max_length = 0
browser_tls = true
cors_origins = ["https://app.example"]
log_json = true
`
	dir := filepath.Join(tmpDir, "mediarelay")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("port = %q, want 8081", cfg.Port)
	}
	if cfg.MusicBase != "http://127.0.0.1:9999" {
		t.Errorf("music_base = %q", cfg.MusicBase)
	}
	if cfg.FilenameMaxLength != 0 {
		t.Errorf("filename_max_length = %d, want 0", cfg.FilenameMaxLength)
	}
	if !cfg.BrowserTLS {
		t.Error("browser_tls should be true")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.example" {
		t.Errorf("cors_origins = %v", cfg.CORSOrigins)
	}
	if cfg.ShortVideoBase != "https://ttsave.app" {
		t.Errorf("unset keys should keep defaults, got short_video_base = %q", cfg.ShortVideoBase)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("missing file should return defaults, got port = %q", cfg.Port)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() should error when an explicit config path is missing")
	}
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PORT", "7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("port = %q, want 7070 from PORT", cfg.Port)
	}
	if cfg.Addr() != ":7070" {
		t.Errorf("Addr() = %q, want :7070", cfg.Addr())
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should reject malformed TOML")
	}
}
