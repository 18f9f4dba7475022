package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/config"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	cfg := config.Default()
	cfg.LogJSON = true

	Configure(logger, cfg, &buf)
	logger.WithField("route", "/health").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "/health", entry["route"])
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		debug bool
		want  logrus.Level
	}{
		{"info", "info", false, logrus.InfoLevel},
		{"warn", "warn", false, logrus.WarnLevel},
		{"debug flag wins", "error", true, logrus.DebugLevel},
		{"garbage falls back to info", "loud", false, logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logrus.New()
			cfg := config.Default()
			cfg.LogLevel = tt.level
			cfg.Debug = tt.debug
			Configure(logger, cfg, &bytes.Buffer{})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestConfigureTextWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	Configure(logger, config.Default(), &buf)
	logger.Info("plain")

	assert.Contains(t, buf.String(), `msg=plain`)
	assert.NotContains(t, buf.String(), "\x1b[")
}
