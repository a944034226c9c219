package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"forwardicons/internal/domain"
	"forwardicons/internal/port"
)

const snapshotKey = "catalog"

// CachedStore wraps a CatalogStore with a short-lived snapshot for read-only
// listings. Fetch always reads the remote document so merges never resolve
// names against stale data. It implements port.CatalogStore.
type CachedStore struct {
	store port.CatalogStore
	cache *expirable.LRU[string, *domain.CatalogDocument]
	group singleflight.Group
}

// NewCachedStore creates a CachedStore. ttl <= 0 defaults to 30s.
func NewCachedStore(store port.CatalogStore, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedStore{
		store: store,
		cache: expirable.NewLRU[string, *domain.CatalogDocument](1, nil, ttl),
	}
}

func (c *CachedStore) Fetch(ctx context.Context) (*domain.CatalogDocument, error) {
	doc, err := c.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(snapshotKey, doc.Clone())
	return doc, nil
}

func (c *CachedStore) Replace(ctx context.Context, doc *domain.CatalogDocument) error {
	if err := c.store.Replace(ctx, doc); err != nil {
		c.Invalidate()
		return err
	}
	c.cache.Add(snapshotKey, doc.Clone())
	return nil
}

// Snapshot returns the cached document, fetching it once for all concurrent
// callers on a miss. The result is a copy the caller may modify.
func (c *CachedStore) Snapshot(ctx context.Context) (*domain.CatalogDocument, error) {
	if doc, ok := c.cache.Get(snapshotKey); ok {
		return doc.Clone(), nil
	}
	v, err, _ := c.group.Do(snapshotKey, func() (interface{}, error) {
		return c.Fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CatalogDocument).Clone(), nil
}

// Invalidate drops the cached snapshot. A failed Replace may still have
// landed remotely, so the next read must refetch.
func (c *CachedStore) Invalidate() {
	c.cache.Remove(snapshotKey)
}
