package port

import (
	"context"

	"forwardicons/internal/domain"
)

// CatalogStore reads and overwrites the single remote catalog document.
// There is no partial update and no concurrency token: Replace is
// last-writer-wins for the whole document.
type CatalogStore interface {
	Fetch(ctx context.Context) (*domain.CatalogDocument, error)
	Replace(ctx context.Context, doc *domain.CatalogDocument) error
}

// PendingStore holds upload results waiting for a combined catalog merge.
type PendingStore interface {
	Append(ctx context.Context, name, url string) (*domain.PendingEntry, error)
	List(ctx context.Context) ([]domain.PendingEntry, error)
	Count(ctx context.Context) (int, error)
	Remove(ctx context.Context, ids []int64) error
}

// MergeLocker serializes catalog read-modify-write cycles.
// The returned unlock func must be called exactly once.
type MergeLocker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
