// Package bootstrap builds the catalog pipeline shared by the server and the
// maintenance commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"forwardicons/internal/catalog"
	"forwardicons/internal/catalog/gist"
	"forwardicons/internal/catalog/s3store"
	"forwardicons/internal/config"
	"forwardicons/internal/imagehost/s3host"
	"forwardicons/internal/metrics"
	"forwardicons/internal/port"
	"forwardicons/internal/repository/postgres"
	s3storage "forwardicons/internal/storage/s3"
)

// Pipeline is the wired catalog side of the service.
type Pipeline struct {
	DB      *sqlx.DB
	Storage port.ObjectStorage
	Store   *catalog.CachedStore
	Merger  *catalog.Merger
	Batch   *catalog.BatchCache
}

// Close releases the database connection, if any.
func (p *Pipeline) Close() {
	if p.DB != nil {
		_ = p.DB.Close()
	}
}

// NeedsS3 reports whether any configured component stores objects in S3.
func NeedsS3(cfg *config.Config) bool {
	return strings.EqualFold(cfg.Upload.Service, s3host.Name) || strings.EqualFold(cfg.Catalog.Backend, "s3")
}

// NewPipeline connects the coordination backend and the catalog store.
func NewPipeline(cfg *config.Config, m *metrics.Metrics) (*Pipeline, error) {
	p := &Pipeline{}

	var locker port.MergeLocker = catalog.NewLocalLocker()
	var pending port.PendingStore = catalog.NewMemoryPendingStore()
	if cfg.Coordination.UsesPostgres() {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("bootstrap.NewPipeline: %w", err)
		}
		p.DB = db
		locker = postgres.NewAdvisoryLocker(db, postgres.CatalogMergeLockKey)
		pending = postgres.NewPendingIconRepo(db)
	} else if !cfg.Server.IsDevelopment() {
		slog.Warn("coordination mode is local; catalog merges are serialized per process only",
			"hint", "set FORWARD_COORDINATION_MODE=postgres when running more than one instance")
	}

	if NeedsS3(cfg) {
		storage, err := s3storage.NewS3Client(&cfg.AWS)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("bootstrap.NewPipeline: %w", err)
		}
		p.Storage = storage
	}

	store, err := CatalogStore(cfg, p.Storage)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.Store = catalog.NewCachedStore(store, cfg.Catalog.CacheTTL)
	p.Merger = catalog.NewMerger(p.Store, locker, cfg.Catalog.Timeout(), m)
	p.Batch = catalog.NewBatchCache(pending, p.Merger, cfg.Batch.MaxPending, m)
	return p, nil
}

// CatalogStore selects the catalog backend named by the configuration.
func CatalogStore(cfg *config.Config, storage port.ObjectStorage) (port.CatalogStore, error) {
	switch strings.ToLower(cfg.Catalog.Backend) {
	case "", "gist":
		if cfg.Catalog.Gist.ID == "" {
			slog.Warn("catalog gist id not configured; catalog updates will be queued")
		}
		return gist.New(&cfg.Catalog, &http.Client{Timeout: cfg.Catalog.Timeout()}), nil
	case "s3":
		if storage == nil {
			return nil, errors.New("bootstrap.CatalogStore: s3 backend requires object storage")
		}
		if cfg.Catalog.S3.Bucket == "" {
			return nil, errors.New("bootstrap.CatalogStore: s3 backend requires FORWARD_CATALOG_S3_BUCKET")
		}
		return s3store.New(storage, &cfg.Catalog.S3), nil
	default:
		return nil, fmt.Errorf("bootstrap.CatalogStore: unknown catalog backend %q", cfg.Catalog.Backend)
	}
}
