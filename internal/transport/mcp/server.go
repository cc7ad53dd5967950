// Package mcp exposes the mise tool handlers over the Model Context
// Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/tools"
	"github.com/sandevgo/misemcp/pkg/log"
)

// Error kinds recorded for calls that never produced a tool response.
const (
	kindArguments = "arguments"
	kindInternal  = "internal"
)

type Server struct {
	mcpServer *server.MCPServer
	audit     core.AuditRepository
	logger    *zerolog.Logger
}

type Option func(*Server)

// WithAudit records every tool call in repo.
func WithAudit(repo core.AuditRepository) Option {
	return func(s *Server) {
		s.audit = repo
	}
}

// NewServer registers defs on a new MCP server. The logger found in ctx is
// attached to every tool call, whichever transport delivers it.
func NewServer(ctx context.Context, defs []tools.Definition, opts ...Option) *Server {
	s := &Server{
		logger: log.FromCtx(ctx),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		core.ServerName,
		core.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.observe),
	)

	for _, def := range defs {
		s.mcpServer.AddTool(newTool(def), toolHandler(def))
	}

	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func newTool(def tools.Definition) mcpproto.Tool {
	opts := []mcpproto.ToolOption{
		mcpproto.WithDescription(def.Description),
		mcpproto.WithReadOnlyHintAnnotation(def.ReadOnly),
	}

	for _, p := range def.Params {
		props := []mcpproto.PropertyOption{mcpproto.Description(p.Description)}
		if p.Required {
			props = append(props, mcpproto.Required())
		}

		switch p.Type {
		case tools.ParamBool:
			props = append(props, mcpproto.DefaultBool(false))
			opts = append(opts, mcpproto.WithBoolean(p.Name, props...))
		default:
			opts = append(opts, mcpproto.WithString(p.Name, props...))
		}
	}

	return mcpproto.NewTool(def.Name, opts...)
}

// toolHandler returns the response as structured content with the same
// JSON as text. A response with success=false is still a normal result;
// only arguments that cannot be decoded yield an error result.
func toolHandler(def tools.Definition) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		resp, err := def.Handler(ctx, req.GetArguments())
		if err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}

		text, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s response: %w", def.Name, err)
		}

		return mcpproto.NewToolResultStructured(resp, string(text)), nil
	}
}

func (s *Server) observe(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		ctx = s.logger.WithContext(ctx)
		start := time.Now()

		res, err := next(ctx, req)

		entry := core.AuditEntry{
			Tool:      req.Params.Name,
			Duration:  time.Since(start),
			CreatedAt: start.UTC(),
		}
		fillOutcome(&entry, res, err)

		ev := s.logger.Info()
		if !entry.Success {
			ev = s.logger.Warn().Str("error_kind", entry.ErrorKind).Str("error", entry.Error)
		}
		ev.Str("tool", entry.Tool).
			Dur("elapsed", entry.Duration).
			Bool("success", entry.Success).
			Msg("tool call")

		s.record(ctx, entry)
		return res, err
	}
}

func fillOutcome(entry *core.AuditEntry, res *mcpproto.CallToolResult, err error) {
	switch {
	case err != nil:
		entry.ErrorKind = kindInternal
		entry.Error = err.Error()
	case res == nil:
		entry.ErrorKind = kindInternal
		entry.Error = "empty result"
	case res.IsError:
		entry.ErrorKind = kindArguments
		entry.Error = resultText(res)
	default:
		if r, ok := res.StructuredContent.(tools.Reporter); ok {
			st := r.Outcome()
			entry.Success = st.Success
			entry.ErrorKind = string(st.ErrorKind)
			entry.Error = st.ErrorText()
		}
	}
}

func resultText(res *mcpproto.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := mcpproto.AsTextContent(c); ok {
			return tc.Text
		}
	}
	return ""
}

func (s *Server) record(ctx context.Context, entry core.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error().Err(err).Str("tool", entry.Tool).Msg("failed to record tool call")
	}
}
