package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forwardicons/internal/catalog"
	"forwardicons/internal/domain"
	"forwardicons/internal/metrics"
	"forwardicons/internal/port"
)

// Warnings attached to outcomes whose catalog update did not complete.
const (
	WarningQueued    = "catalog update failed; queued for finalize"
	WarningNotQueued = "catalog update failed and the entry could not be queued; record this url manually"
	ErrorMergeFailed = "catalog update failed"
	defaultIconName  = "icon"
)

// UploadInput is one upload request: one or more files plus an optional
// display name shared by every file.
type UploadInput struct {
	Files []domain.UploadFile
	Name  string
}

// UploadService forwards images to the configured host and records them in
// the catalog.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) ([]domain.FileOutcome, error)
	FinalizeBatch(ctx context.Context) (*domain.FinalizeResult, error)
	PendingEntries(ctx context.Context) ([]domain.PendingEntry, error)
	ServiceName() string
}

// UploadOptions tune how a failed catalog update is reported.
type UploadOptions struct {
	// StrictMerge reports an upload whose catalog update failed as failed,
	// even though the entry was queued.
	StrictMerge bool
}

type uploadService struct {
	host    port.ImageHost
	merger  *catalog.Merger
	batch   *catalog.BatchCache
	metrics *metrics.Metrics
	opts    UploadOptions
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	host port.ImageHost,
	merger *catalog.Merger,
	batch *catalog.BatchCache,
	m *metrics.Metrics,
	opts UploadOptions,
) UploadService {
	return &uploadService{
		host:    host,
		merger:  merger,
		batch:   batch,
		metrics: m,
		opts:    opts,
	}
}

func (s *uploadService) ServiceName() string {
	return s.host.Name()
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) ([]domain.FileOutcome, error) {
	if len(input.Files) == 0 {
		return nil, domain.ErrMissingFile
	}
	if err := s.host.Validate(); err != nil {
		return nil, fmt.Errorf("upload.Upload: %s pre-flight: %w", s.host.Name(), err)
	}

	outcomes := make([]domain.FileOutcome, 0, len(input.Files))
	for _, file := range input.Files {
		outcomes = append(outcomes, s.uploadOne(ctx, file, displayName(input.Name, file)))
	}
	return outcomes, nil
}

func displayName(requested string, file domain.UploadFile) string {
	if requested != "" {
		return requested
	}
	if name := file.DisplayName(); name != "" && name != "." {
		return name
	}
	return defaultIconName
}

func (s *uploadService) uploadOne(ctx context.Context, file domain.UploadFile, name string) domain.FileOutcome {
	url, err := s.host.Upload(ctx, file)
	if err != nil {
		s.record(metrics.OutcomeFailure)
		slog.WarnContext(ctx, "upload.Upload: provider upload failed",
			"provider", s.host.Name(), "file", file.Filename, "error", err)
		return domain.FileOutcome{OK: false, Name: name, Error: err.Error()}
	}

	result, mergeErr := s.merger.Merge(ctx, []domain.IconRecord{{Name: name, URL: url}})
	if mergeErr == nil {
		s.record(metrics.OutcomeSuccess)
		return domain.FileOutcome{OK: true, Name: result.Resolved[0].Name, URL: url}
	}

	slog.WarnContext(ctx, "upload.Upload: catalog merge failed, queueing", "name", name, "error", mergeErr)
	warning := WarningQueued
	if err := s.batch.Append(ctx, name, url); err != nil {
		slog.ErrorContext(ctx, "upload.Upload: queueing failed", "name", name, "url", url, "error", err)
		warning = WarningNotQueued
		if errors.Is(err, catalog.ErrBatchFull) {
			warning = "catalog update failed and the pending batch is full; record this url manually"
		}
	}

	if s.opts.StrictMerge {
		s.record(metrics.OutcomeFailure)
		return domain.FileOutcome{OK: false, Name: name, URL: url, Error: ErrorMergeFailed, Warning: warning}
	}
	s.record(metrics.OutcomeQueued)
	return domain.FileOutcome{OK: true, Name: name, URL: url, Warning: warning}
}

func (s *uploadService) FinalizeBatch(ctx context.Context) (*domain.FinalizeResult, error) {
	result, err := s.batch.DrainAndMerge(ctx)
	if err != nil {
		return nil, fmt.Errorf("upload.FinalizeBatch: %w", err)
	}
	if result.Merged > 0 {
		slog.InfoContext(ctx, "upload.FinalizeBatch: merged pending entries", "count", result.Merged)
	}
	return result, nil
}

func (s *uploadService) PendingEntries(ctx context.Context) ([]domain.PendingEntry, error) {
	entries, err := s.batch.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("upload.PendingEntries: %w", err)
	}
	return entries, nil
}

func (s *uploadService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues(s.host.Name(), outcome).Inc()
	}
}
