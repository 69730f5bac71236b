package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/internal/config"
	"github.com/jamesainslie/go-sentsplit/internal/server"
)

type serveOptions struct {
	addr          string
	maxLength     int
	maxInput      int
	maxConcurrent int
	normalize     bool
}

// NewServeCmd creates the serve command
func NewServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the streaming split endpoint over HTTP",
		Long: `Start the HTTP server.

POST / with a JSON body {"text": "..."} streams one record per segment,
followed by a final {"text":"Done","done":true} record. Records are
newline-delimited JSON unless the request sends
Accept: application/x-protobuf. GET /healthz reports readiness.`,
		Example: `  # Listen on the default address
  sentsplit serve

  # Shorter segments on a custom port
  sentsplit serve --addr :9000 --max-length 128

  curl -N -d '{"text":"One. Two."}' localhost:8080/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd, func(c *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("addr") {
					c.Addr = opts.addr
				}
				if flags.Changed("max-length") {
					c.MaxSegmentLength = opts.maxLength
				}
				if flags.Changed("max-input") {
					c.MaxInputLength = opts.maxInput
				}
				if flags.Changed("max-concurrent") {
					c.MaxConcurrentStreams = opts.maxConcurrent
				}
				if flags.Changed("normalize") {
					c.NormalizeInput = opts.normalize
				}
			})
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "Maximum segment length in characters")
	cmd.Flags().IntVar(&opts.maxInput, "max-input", 0, "Maximum request text length in characters")
	cmd.Flags().IntVar(&opts.maxConcurrent, "max-concurrent", 0, "Maximum number of concurrent streams")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "Apply Unicode NFC normalization to request text")

	return cmd
}
