package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"forwardicons/internal/port"
)

// CatalogMergeLockKey is the advisory lock id guarding catalog merges.
const CatalogMergeLockKey int64 = 0x666f7277617264 // "forward"

type advisoryLocker struct {
	db  *sqlx.DB
	key int64
}

// NewAdvisoryLocker creates a MergeLocker backed by pg_advisory_lock, which
// serializes catalog merges across every instance sharing the database.
func NewAdvisoryLocker(db *sqlx.DB, key int64) port.MergeLocker {
	return &advisoryLocker{db: db, key: key}
}

// Lock holds a dedicated connection until unlock is called; session-level
// advisory locks belong to the connection that took them.
func (l *advisoryLocker) Lock(ctx context.Context) (func(), error) {
	conn, err := l.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisoryLocker.Lock conn: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", l.key); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advisoryLocker.Lock: %w", err)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.ExecContext(unlockCtx, "SELECT pg_advisory_unlock($1)", l.key); err != nil {
			slog.Error("postgres.advisoryLocker: unlock failed", "error", err)
		}
		_ = conn.Close()
	}, nil
}
