package commands

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sentsplit",
		Short: "Split text into bounded-length segments",
		Long: `sentsplit cuts text into segments no longer than a maximum length,
preferring sentence ends, then clause punctuation, then whitespace, and
cutting mid-word only when a window has no boundary at all.

Settings come from built-in defaults, an optional YAML file (--config),
a .env file in the working directory, SENTSPLIT_* environment variables,
and finally command-line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal.
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(
		NewServeCmd(opts),
		NewSplitCmd(opts),
		NewMCPCmd(opts),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// load resolves the configuration and builds the logger. apply lets a
// subcommand layer its own flags on top before validation.
func (o *rootOptions) load(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if apply != nil {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}
