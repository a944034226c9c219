package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwardicons/internal/domain"
	"forwardicons/internal/export"
	"forwardicons/internal/service"
)

type stubSnapshotter struct {
	doc *domain.CatalogDocument
	err error
}

func (s stubSnapshotter) Snapshot(context.Context) (*domain.CatalogDocument, error) {
	return s.doc, s.err
}

func TestCatalogService_ExportCSV(t *testing.T) {
	svc := service.NewCatalogService(stubSnapshotter{doc: catalogWith("home")}, service.CatalogInfo{})

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "CSV", &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), export.BOM))
	assert.Contains(t, buf.String(), "home,https://img/home.png")
}

func TestCatalogService_ExportUnknownFormat(t *testing.T) {
	svc := service.NewCatalogService(stubSnapshotter{doc: catalogWith()}, service.CatalogInfo{})

	err := svc.Export(context.Background(), "pdf", &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogService_SnapshotError(t *testing.T) {
	svc := service.NewCatalogService(stubSnapshotter{err: domain.ErrMerge}, service.CatalogInfo{})

	_, err := svc.Snapshot(context.Background())

	assert.True(t, errors.Is(err, domain.ErrMerge))
}

func TestCatalogService_Info(t *testing.T) {
	info := service.CatalogInfo{GithubUser: "octo", GistID: "abc", UploadService: "PICUI", Backend: "gist"}
	svc := service.NewCatalogService(stubSnapshotter{}, info)

	assert.Equal(t, info, svc.Info())
}
