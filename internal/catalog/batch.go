package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"forwardicons/internal/domain"
	"forwardicons/internal/metrics"
	"forwardicons/internal/port"
)

// ErrBatchFull is returned by Append when the pending queue is at capacity.
var ErrBatchFull = errors.New("pending batch is full")

// DefaultMaxPending bounds the queue when no limit is configured.
const DefaultMaxPending = 1000

// BatchCache queues uploads whose catalog update failed until an explicit
// finalize merges them in one cycle.
type BatchCache struct {
	mu         sync.Mutex
	store      port.PendingStore
	merger     *Merger
	maxPending int
	metrics    *metrics.Metrics
}

// NewBatchCache creates a BatchCache. maxPending <= 0 uses DefaultMaxPending.
func NewBatchCache(store port.PendingStore, merger *Merger, maxPending int, m *metrics.Metrics) *BatchCache {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &BatchCache{store: store, merger: merger, maxPending: maxPending, metrics: m}
}

// Append queues one entry.
func (b *BatchCache) Append(ctx context.Context, name, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting pending entries: %w", err)
	}
	if n >= b.maxPending {
		return ErrBatchFull
	}
	if _, err := b.store.Append(ctx, name, url); err != nil {
		return fmt.Errorf("queueing pending entry: %w", err)
	}
	b.setGauge(n + 1)
	return nil
}

// Pending lists the queued entries in insertion order.
func (b *BatchCache) Pending(ctx context.Context) ([]domain.PendingEntry, error) {
	return b.store.List(ctx)
}

// DrainAndMerge merges every queued entry into the catalog in one cycle.
// Queued entries are removed only after the catalog was replaced; entries
// added while the merge runs stay queued.
func (b *BatchCache) DrainAndMerge(ctx context.Context) (*domain.FinalizeResult, error) {
	unlock, err := b.merger.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquiring merge lock: %w", domain.ErrMerge, err)
	}
	defer unlock()

	pending, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending entries: %w", err)
	}
	if len(pending) == 0 {
		return &domain.FinalizeResult{Merged: 0, Icons: []domain.IconRecord{}}, nil
	}

	entries := make([]domain.IconRecord, len(pending))
	ids := make([]int64, len(pending))
	for i, p := range pending {
		entries[i] = domain.IconRecord{Name: p.Name, URL: p.URL}
		ids[i] = p.ID
	}

	result, err := b.merger.mergeLocked(ctx, entries)
	b.merger.record(PathFinalize, err)
	if err != nil {
		return nil, err
	}

	// The catalog already holds these entries; a failed removal means a later
	// finalize re-adds them under suffixed names.
	if err := b.store.Remove(ctx, ids); err != nil {
		slog.ErrorContext(ctx, "catalog.BatchCache: removing merged entries failed", "count", len(ids), "error", err)
	}
	if n, err := b.store.Count(ctx); err == nil {
		b.setGauge(n)
	}

	return &domain.FinalizeResult{Merged: len(result.Resolved), Icons: result.Resolved}, nil
}

func (b *BatchCache) setGauge(n int) {
	if b.metrics != nil {
		b.metrics.BatchPending.Set(float64(n))
	}
}
