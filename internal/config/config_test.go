package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SENTSPLIT_ADDR",
	"SENTSPLIT_MAX_SEGMENT_LENGTH",
	"SENTSPLIT_MAX_INPUT_LENGTH",
	"SENTSPLIT_MAX_CONCURRENT_STREAMS",
	"SENTSPLIT_NORMALIZE_INPUT",
	"SENTSPLIT_READ_HEADER_TIMEOUT",
	"SENTSPLIT_SHUTDOWN_TIMEOUT",
	"SENTSPLIT_LOG_LEVEL",
	"SENTSPLIT_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 256, cfg.MaxSegmentLength)
	assert.Equal(t, 4194304, cfg.MaxInputLength)
	assert.Equal(t, 1, cfg.MinSegmentLength)
	assert.Positive(t, cfg.MaxConcurrentStreams)
	assert.False(t, cfg.NormalizeInput)
	assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sentsplit.yaml")
	content := `addr: "127.0.0.1:9000"
max_segment_length: 128
max_input_length: 2147483647
normalize_input: true
shutdown_timeout: 3s
log_format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 128, cfg.MaxSegmentLength)
	assert.Equal(t, 2147483647, cfg.MaxInputLength)
	assert.True(t, cfg.NormalizeInput)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	// untouched keys keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sentsplit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_segment_length: 128\n"), 0o644))

	t.Setenv("SENTSPLIT_MAX_SEGMENT_LENGTH", "64")
	t.Setenv("SENTSPLIT_NORMALIZE_INPUT", "1")
	t.Setenv("SENTSPLIT_READ_HEADER_TIMEOUT", "2s")
	t.Setenv("SENTSPLIT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.MaxSegmentLength)
	assert.True(t, cfg.NormalizeInput)
	assert.Equal(t, 2*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnparseableEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTSPLIT_MAX_SEGMENT_LENGTH", "lots")
	t.Setenv("SENTSPLIT_SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.MaxSegmentLength)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_segment_length: [1, 2"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero max segment length", func(c *Config) { c.MaxSegmentLength = 0 }},
		{"zero max input length", func(c *Config) { c.MaxInputLength = 0 }},
		{"min segment length changed", func(c *Config) { c.MinSegmentLength = 2 }},
		{"no stream slots", func(c *Config) { c.MaxConcurrentStreams = 0 }},
		{"negative timeout", func(c *Config) { c.ShutdownTimeout = -time.Second }},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
