package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/pkg/log"
	"github.com/sandevgo/misemcp/pkg/srv"
)

type TransportType string

const (
	TransportStdio TransportType = "stdio"
	TransportSSE   TransportType = "sse"
	TransportHTTP  TransportType = "http"
)

// NewService wraps the server in the transport selected by cfg.
func NewService(s *Server, cfg core.TransportConfig) (srv.Service, error) {
	switch TransportType(cfg.GetTransport()) {
	case TransportStdio:
		return NewStdioService(s, os.Stdin, os.Stdout), nil
	case TransportSSE:
		sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(cfg.GetBaseURL()))
		return &httpService{transport: TransportSSE, addr: cfg.GetListenAddr(), server: sse}, nil
	case TransportHTTP:
		streamable := server.NewStreamableHTTPServer(s.mcpServer)
		return &httpService{transport: TransportHTTP, addr: cfg.GetListenAddr(), server: streamable}, nil
	}

	return nil, fmt.Errorf("unsupported transport type: %s", cfg.GetTransport())
}

type stdioService struct {
	server *server.StdioServer
	in     io.Reader
	out    io.Writer
}

// NewStdioService serves JSON-RPC on in/out until in is closed or the
// context is cancelled.
func NewStdioService(s *Server, in io.Reader, out io.Writer) srv.Service {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(stdlog.New(s.logger, "", 0))
	return &stdioService{server: stdio, in: in, out: out}
}

func (s *stdioService) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("transport", string(TransportStdio)).Msg("MCP server started")

	err := s.server.Listen(ctx, s.in, s.out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	return nil
}

func (s *stdioService) Shutdown(ctx context.Context) error {
	return nil
}

// httpServer is implemented by both the SSE and the streamable HTTP
// servers of mcp-go.
type httpServer interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

type httpService struct {
	transport TransportType
	addr      string
	server    httpServer
}

func (h *httpService) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().
		Str("transport", string(h.transport)).
		Str("addr", h.addr).
		Msg("MCP server listening")

	if err := h.server.Start(h.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server failed: %w", h.transport, err)
	}
	return nil
}

func (h *httpService) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop %s server: %w", h.transport, err)
	}
	return nil
}
