package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"forwardicons/internal/domain"
	"forwardicons/internal/port"
)

type pendingIconRepo struct {
	db *sqlx.DB
}

// NewPendingIconRepo creates a PostgreSQL-backed PendingStore shared by every
// instance using the same database.
func NewPendingIconRepo(db *sqlx.DB) port.PendingStore {
	return &pendingIconRepo{db: db}
}

func (r *pendingIconRepo) Append(ctx context.Context, name, url string) (*domain.PendingEntry, error) {
	var entry domain.PendingEntry
	err := r.db.GetContext(ctx, &entry,
		`INSERT INTO pending_icons (name, url) VALUES ($1, $2)
		RETURNING id, name, url, created_at`, name, url)
	if err != nil {
		return nil, fmt.Errorf("pendingIconRepo.Append: %w", err)
	}
	return &entry, nil
}

func (r *pendingIconRepo) List(ctx context.Context) ([]domain.PendingEntry, error) {
	entries := []domain.PendingEntry{}
	err := r.db.SelectContext(ctx, &entries,
		"SELECT id, name, url, created_at FROM pending_icons ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("pendingIconRepo.List: %w", err)
	}
	return entries, nil
}

func (r *pendingIconRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM pending_icons"); err != nil {
		return 0, fmt.Errorf("pendingIconRepo.Count: %w", err)
	}
	return n, nil
}

func (r *pendingIconRepo) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM pending_icons WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("pendingIconRepo.Remove: %w", err)
	}
	return nil
}
