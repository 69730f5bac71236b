package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/internal/mcptool"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs sentsplit as an MCP (Model Context Protocol) server on stdio,
exposing a split_text tool that LLM agents can call to cut long text
into bounded-length segments. Logs go to stderr.`,
		Example: `  # Start MCP server (typically launched by the agent host)
  sentsplit mcp

  # Host configuration:
  # {
  #   "mcpServers": {
  #     "sentsplit": {
  #       "command": "sentsplit",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd, nil)
			if err != nil {
				return err
			}

			server := mcpserver.NewMCPServer("sentsplit", versionInfo.Version)
			mcptool.RegisterTools(server, cfg.MaxSegmentLength, cfg.MaxInputLength, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("MCP server starting on stdio")

			serverErr := make(chan error, 1)
			go func() {
				serverErr <- mcpserver.ServeStdio(server)
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutdown signal received")
				return nil
			case err := <-serverErr:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			}
		},
	}
}
