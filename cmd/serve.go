package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cobra "github.com/spf13/cobra"

	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	server "github.com/inference-gateway/desktop-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server and expose every automation tool.

The default stdio transport is what MCP clients launch as a subprocess. The
http transport listens on --addr and serves requests at --path. Logs always
go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, f := newDispatcher(c)
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("Failed to close automation backend", "error", err)
			}
		}()

		// Build eagerly so backend problems surface at startup
		f.Provider(ctx)
		if f.Degraded() {
			logger.Warn("Serving with a degraded provider", "error", f.InitError())
		}

		if err := server.New(c.Server, d).Serve(ctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "", "MCP transport: stdio or http")
	serveCmd.Flags().String("addr", "", "listen address for the http transport")
	serveCmd.Flags().String("path", "", "endpoint path for the http transport")

	bindFlag(serveCmd, "server.transport", "transport")
	bindFlag(serveCmd, "server.addr", "addr")
	bindFlag(serveCmd, "server.path", "path")
}
