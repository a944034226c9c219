package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"forwardicons/internal/domain"
	"forwardicons/internal/export"
)

// Export formats accepted by CatalogService.Export.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// CatalogInfo is the deployment metadata shown to callers.
type CatalogInfo struct {
	GithubUser    string `json:"github_user"`
	GistID        string `json:"gist_id"`
	UploadService string `json:"upload_service"`
	Backend       string `json:"catalog_backend"`
}

// CatalogSnapshotter serves a possibly cached copy of the catalog.
type CatalogSnapshotter interface {
	Snapshot(ctx context.Context) (*domain.CatalogDocument, error)
}

// CatalogService exposes read-only views of the catalog.
type CatalogService interface {
	Snapshot(ctx context.Context) (*domain.CatalogDocument, error)
	Export(ctx context.Context, format string, w io.Writer) error
	Info() CatalogInfo
}

type catalogService struct {
	store CatalogSnapshotter
	info  CatalogInfo
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(store CatalogSnapshotter, info CatalogInfo) CatalogService {
	return &catalogService{store: store, info: info}
}

func (s *catalogService) Snapshot(ctx context.Context) (*domain.CatalogDocument, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Snapshot: %w", err)
	}
	return doc, nil
}

func (s *catalogService) Export(ctx context.Context, format string, w io.Writer) error {
	format = strings.ToLower(format)
	if format != FormatCSV && format != FormatXLSX {
		return fmt.Errorf("unsupported export format %q: %w", format, domain.ErrInvalidInput)
	}

	doc, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	if format == FormatXLSX {
		return export.WriteXLSX(w, doc)
	}
	return export.WriteCSV(w, doc)
}

func (s *catalogService) Info() CatalogInfo {
	return s.info
}
