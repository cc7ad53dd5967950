package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/misemcp/internal/transport/mcp"
	"github.com/sandevgo/misemcp/pkg/log"
	"github.com/sandevgo/misemcp/pkg/srv"
	"github.com/spf13/cobra"
)

var (
	serveTransport string
	serveAddr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Starts the MCP server on the selected transport.

Transports:
  stdio  JSON-RPC over stdin/stdout (default)
  sse    Server-Sent Events over HTTP
  http   Streamable HTTP`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		app := NewApp(ctx)
		if cmd.Flags().Changed("transport") {
			app.TransportConfig.Transport = serveTransport
		}
		if cmd.Flags().Changed("addr") {
			app.TransportConfig.Addr = serveAddr
		}

		var opts []mcp.Option
		if app.Audit != nil {
			opts = append(opts, mcp.WithAudit(app.Audit))
		}
		server := mcp.NewServer(ctx, app.Handlers.Definitions(), opts...)

		transport, err := mcp.NewService(server, app.TransportConfig)
		if err != nil {
			_ = app.Close()
			return err
		}

		logger.Info().
			Str("mise", app.AppConfig.GetMiseBinary()).
			Str("transport", app.TransportConfig.GetTransport()).
			Msg("starting misemcp")

		services := []srv.Service{
			transport,
			srv.NewCleanup(app.Close),
		}
		if err := srv.Run(ctx, services); err != nil {
			return err
		}

		logger.Info().Msg("misemcp has been shut down gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "stdio", "transport: stdio, sse or http")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address for sse and http")
	rootCmd.AddCommand(serveCmd)
}
