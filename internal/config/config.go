// Package config loads process settings for the sentsplit service.
//
// Settings are resolved once at startup in this order, later sources
// overriding earlier ones: built-in defaults, an optional YAML file, then
// SENTSPLIT_* environment variables. The result is treated as read-only.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sentsplit "github.com/jamesainslie/go-sentsplit"
)

// DefaultMaxInputLength is the default bound, in characters, on request text.
const DefaultMaxInputLength = 4194304

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings for the service.
type Config struct {
	Addr string `yaml:"addr"`

	// Segmentation limits
	MaxSegmentLength int `yaml:"max_segment_length"`
	MaxInputLength   int `yaml:"max_input_length"`
	MinSegmentLength int `yaml:"-"`

	// Transport settings
	MaxConcurrentStreams int           `yaml:"max_concurrent_streams"`
	NormalizeInput       bool          `yaml:"normalize_input"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:                 ":8080",
		MaxSegmentLength:     sentsplit.DefaultMaxLength,
		MaxInputLength:       DefaultMaxInputLength,
		MinSegmentLength:     sentsplit.MinLength,
		MaxConcurrentStreams: runtime.NumCPU() * 4,
		ReadHeaderTimeout:    10 * time.Second,
		ShutdownTimeout:      15 * time.Second,
		LogLevel:             "info",
		LogFormat:            "text",
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.Addr = getEnv("SENTSPLIT_ADDR", c.Addr)
	c.MaxSegmentLength = getEnvInt("SENTSPLIT_MAX_SEGMENT_LENGTH", c.MaxSegmentLength)
	c.MaxInputLength = getEnvInt("SENTSPLIT_MAX_INPUT_LENGTH", c.MaxInputLength)
	c.MaxConcurrentStreams = getEnvInt("SENTSPLIT_MAX_CONCURRENT_STREAMS", c.MaxConcurrentStreams)
	c.NormalizeInput = getEnvBool("SENTSPLIT_NORMALIZE_INPUT", c.NormalizeInput)
	c.ReadHeaderTimeout = getEnvDuration("SENTSPLIT_READ_HEADER_TIMEOUT", c.ReadHeaderTimeout)
	c.ShutdownTimeout = getEnvDuration("SENTSPLIT_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.LogLevel = getEnv("SENTSPLIT_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("SENTSPLIT_LOG_FORMAT", c.LogFormat)
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if c.MinSegmentLength != sentsplit.MinLength {
		return fmt.Errorf("%w: min segment length is fixed at %d, got %d", ErrInvalid, sentsplit.MinLength, c.MinSegmentLength)
	}
	if c.MaxSegmentLength < c.MinSegmentLength {
		return fmt.Errorf("%w: max_segment_length must be >= %d, got %d", ErrInvalid, c.MinSegmentLength, c.MaxSegmentLength)
	}
	if c.MaxInputLength < 1 {
		return fmt.Errorf("%w: max_input_length must be >= 1, got %d", ErrInvalid, c.MaxInputLength)
	}
	if c.MaxConcurrentStreams < 1 {
		return fmt.Errorf("%w: max_concurrent_streams must be >= 1, got %d", ErrInvalid, c.MaxConcurrentStreams)
	}
	if c.ReadHeaderTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalid)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
