package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/pkg/retry"
)

var _ core.AuditRepository = (*AuditLog)(nil)

// AuditLog may be shared by several server processes, so writes are
// retried while another connection holds the lock.
type AuditLog struct {
	db      *sql.DB
	retrier *retry.Retrier
}

func NewAuditLog(db *sql.DB) *AuditLog {
	cfg := retry.NewDefaultConfig()
	cfg.Retryable = isBusy

	return &AuditLog{
		db:      db,
		retrier: retry.NewRetrier(cfg),
	}
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func (a *AuditLog) Record(ctx context.Context, entry core.AuditEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO tool_calls (tool, success, error_kind, error, duration_ns, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	err := a.retrier.Do(ctx, func() error {
		_, err := a.db.ExecContext(ctx, query,
			entry.Tool,
			entry.Success,
			entry.ErrorKind,
			entry.Error,
			entry.Duration.Nanoseconds(),
			createdAt.UTC(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert tool call: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (a *AuditLog) Recent(ctx context.Context, limit int) ([]core.AuditEntry, error) {
	query := `SELECT id, tool, success, error_kind, error, duration_ns, created_at FROM tool_calls ORDER BY id DESC LIMIT ?`

	rows, err := a.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tool calls: %w", err)
	}
	defer rows.Close()

	var entries []core.AuditEntry
	for rows.Next() {
		var (
			e        core.AuditEntry
			duration int64
		)
		if err := rows.Scan(&e.ID, &e.Tool, &e.Success, &e.ErrorKind, &e.Error, &duration, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tool call: %w", err)
		}
		e.Duration = time.Duration(duration)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
