package core

import (
	"context"
	"time"
)

type AuditRepository interface {
	Record(ctx context.Context, entry AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
}

// AuditEntry is one tool invocation as seen by the MCP layer.
type AuditEntry struct {
	ID        int64         `json:"id"`
	Tool      string        `json:"tool"`
	Success   bool          `json:"success"`
	ErrorKind string        `json:"error_kind,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}
