package s3store_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forwardicons/internal/catalog/s3store"
	"forwardicons/internal/config"
	"forwardicons/internal/domain"
	"forwardicons/internal/port"
	"forwardicons/mocks"
)

var cfg = &config.S3CatalogConfig{Bucket: "bkt", Key: "catalog/icons.json"}

func TestStore_Fetch_MissingObjectGivesDefault(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bkt", "catalog/icons.json").
		Return(nil, fmt.Errorf("s3 download: %w", domain.ErrNotFound))

	doc, err := s3store.New(storage, cfg).Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalog(), doc)
}

func TestStore_Fetch_Decodes(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bkt", "catalog/icons.json").
		Return([]byte(`{"name":"Forward","description":"","icons":[{"name":"a","url":"u"}]}`), nil)

	doc, err := s3store.New(storage, cfg).Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.IconRecord{{Name: "a", URL: "u"}}, doc.Icons)
}

func TestStore_Fetch_OtherErrorIsMergeFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := s3store.New(storage, cfg).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrMerge)
}

func TestStore_Replace_PutsJSON(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		body, _ := io.ReadAll(in.Body)
		return in.Bucket == "bkt" && in.Key == "catalog/icons.json" &&
			in.ContentType == "application/json" && in.CacheControl == port.CacheNoStore &&
			int64(len(body)) == in.Size
	})).Return(&port.UploadOutput{}, nil)

	err := s3store.New(storage, cfg).Replace(context.Background(), domain.DefaultCatalog())

	require.NoError(t, err)
	storage.AssertExpectations(t)
}
