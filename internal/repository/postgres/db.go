package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"forwardicons/internal/config"
)

const connectTimeout = 10 * time.Second

// NewDB opens the coordination database. It backs the pending queue and the
// merge advisory lock, and each held lock pins one pooled connection, so
// MaxOpen must leave room for a merge plus concurrent queue writes.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres.NewDB: dsn not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewDB: %w", err)
	}
	maxOpen := cfg.MaxOpen
	if maxOpen > 0 && maxOpen < 2 {
		maxOpen = 2
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
