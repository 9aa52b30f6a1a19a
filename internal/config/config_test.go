package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handtracker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
engine {
  tick = "1s"
}

log {
  level  = "debug"
  format = "json"
}

watch {
  addr = ":9000"
}
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.TickInterval())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9000", cfg.Watch.Addr)
	assert.True(t, cfg.Display.Color, "omitted blocks keep their defaults")
}

func TestParseConfigFillsOmittedAttributes(t *testing.T) {
	cfg, err := ParseConfig([]byte("log {\n  format = \"logfmt\"\n}\n"), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logfmt", cfg.Log.Format)
}

func TestParseConfigDisplayKeepsUnsetDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("display {\n  color = false\n}\n"), "inline.hcl")
	require.NoError(t, err)
	assert.False(t, cfg.Display.Color)
	assert.True(t, cfg.Display.HoleCards, "omitted attribute keeps its default")

	cfg, err = ParseConfig([]byte("display {\n  hole_cards = false\n}\n"), "inline.hcl")
	require.NoError(t, err)
	assert.True(t, cfg.Display.Color)
	assert.False(t, cfg.Display.HoleCards)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("engine {"), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = ParseConfig([]byte("engine {\n  speed = 1\n}\n"), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad tick", func(c *Config) { c.Engine.Tick = "soon" }},
		{"zero tick", func(c *Config) { c.Engine.Tick = "0s" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"no watch address", func(c *Config) { c.Watch.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HANDTRACKER_LOG_LEVEL", "warn")
	t.Setenv("HANDTRACKER_TICK", "2s")
	t.Setenv("HANDTRACKER_WATCH_ADDR", "0.0.0.0:7000")
	t.Setenv("HANDTRACKER_NO_COLOR", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.TickInterval())
	assert.Equal(t, "0.0.0.0:7000", cfg.Watch.Addr)
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, "text", cfg.Log.Format, "unset variables leave the file value")
}

func TestApplyEnvInvalidDuration(t *testing.T) {
	t.Setenv("HANDTRACKER_TICK", "whenever")
	assert.ErrorContains(t, DefaultConfig().ApplyEnv(), "parse env")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := LogSettings{Level: "warn", Format: "logfmt"}.NewLogger(&buf)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	logger.Warn("shown", "seat", 4)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "seat=4")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.log")
	logger, closer, err := LogSettings{Level: "info", File: path}.NewLogger(os.Stderr)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, _, err := LogSettings{Level: "chatty"}.NewLogger(os.Stderr)
	assert.Error(t, err)
}
