package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"forwardicons/internal/catalog"
	"forwardicons/internal/config"
	"forwardicons/internal/domain"
	"forwardicons/internal/port"
)

// Store keeps the catalog as a single S3 object. Writes are plain PUTs, so
// concurrent writers are last-writer-wins. It implements port.CatalogStore.
type Store struct {
	storage port.ObjectStorage
	bucket  string
	key     string
}

// New creates an S3-backed catalog store.
func New(storage port.ObjectStorage, cfg *config.S3CatalogConfig) *Store {
	return &Store{storage: storage, bucket: cfg.Bucket, key: cfg.Key}
}

func (s *Store) Fetch(ctx context.Context) (*domain.CatalogDocument, error) {
	if s.bucket == "" {
		return nil, fmt.Errorf("%w: catalog bucket not configured", domain.ErrConfiguration)
	}
	data, err := s.storage.Download(ctx, s.bucket, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("%w: reading catalog object: %w", domain.ErrMerge, err)
	}
	return catalog.DecodeDocument(data), nil
}

func (s *Store) Replace(ctx context.Context, doc *domain.CatalogDocument) error {
	if s.bucket == "" {
		return fmt.Errorf("%w: catalog bucket not configured", domain.ErrConfiguration)
	}
	content, err := catalog.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:       s.bucket,
		Key:          s.key,
		Body:         bytes.NewReader(content),
		ContentType:  "application/json",
		CacheControl: port.CacheNoStore,
		Size:         int64(len(content)),
	})
	if err != nil {
		return fmt.Errorf("%w: writing catalog object: %w", domain.ErrMerge, err)
	}
	return nil
}
