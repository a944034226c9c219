package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"forwardicons/internal/domain"
	"forwardicons/internal/metrics"
	"forwardicons/internal/port"
)

// Merge paths used as metric labels.
const (
	PathSingle   = "single"
	PathFinalize = "finalize"
)

// MergeResult is the outcome of one fetch, resolve, append and replace cycle.
type MergeResult struct {
	// Resolved holds the stored records in input order, with final names.
	Resolved []domain.IconRecord
	Document *domain.CatalogDocument
}

// Merger appends records to the remote catalog. Every cycle runs under the
// merge lock so two merges in the same process never interleave.
type Merger struct {
	store   port.CatalogStore
	locker  port.MergeLocker
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewMerger creates a Merger. timeout bounds each store call; zero means 15s.
func NewMerger(store port.CatalogStore, locker port.MergeLocker, timeout time.Duration, m *metrics.Metrics) *Merger {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Merger{store: store, locker: locker, timeout: timeout, metrics: m}
}

// Merge stores entries, resolving each name against the document as it grows.
func (m *Merger) Merge(ctx context.Context, entries []domain.IconRecord) (*MergeResult, error) {
	unlock, err := m.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquiring merge lock: %w", domain.ErrMerge, err)
	}
	defer unlock()

	result, err := m.mergeLocked(ctx, entries)
	m.record(PathSingle, err)
	return result, err
}

// mergeLocked must be called with the merge lock held.
func (m *Merger) mergeLocked(ctx context.Context, entries []domain.IconRecord) (*MergeResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, m.timeout)
	doc, err := m.store.Fetch(fetchCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: fetching catalog: %w", domain.ErrMerge, err)
	}

	updated := doc.Clone()
	resolved := make([]domain.IconRecord, 0, len(entries))
	for _, e := range entries {
		rec := domain.IconRecord{Name: ResolveName(e.Name, updated.Icons), URL: e.URL}
		updated.Icons = append(updated.Icons, rec)
		resolved = append(resolved, rec)
	}

	replaceCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err = m.store.Replace(replaceCtx, updated)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: replacing catalog: %w", domain.ErrMerge, err)
	}

	slog.DebugContext(ctx, "catalog.Merger: catalog replaced", "added", len(resolved), "total", len(updated.Icons))
	return &MergeResult{Resolved: resolved, Document: updated}, nil
}

func (m *Merger) record(path string, err error) {
	if m.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	m.metrics.CatalogMerges.WithLabelValues(path, outcome).Inc()
}
