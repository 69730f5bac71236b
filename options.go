package sentsplit

import "log/slog"

const (
	// DefaultMaxLength is the default upper bound, in characters, on the
	// length of an emitted segment.
	DefaultMaxLength = 256

	// MinLength is the lower bound on the length of an emitted segment.
	MinLength = 1
)

// Option configures a Splitter.
type Option func(*config)

type config struct {
	maxLength int
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		maxLength: DefaultMaxLength,
		logger:    slog.Default(),
	}
}

// WithMaxLength sets the maximum segment length in characters
// (default: DefaultMaxLength). Values below MinLength make New fail.
func WithMaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
