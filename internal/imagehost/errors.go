package imagehost

import (
	"fmt"

	"forwardicons/internal/domain"
)

// Kind classifies why an upload failed.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindStatus     Kind = "status"
	KindFormat     Kind = "format"
	KindCredential Kind = "credential"
	KindAuth       Kind = "auth"
)

// UploadError is returned by every image host on failure.
type UploadError struct {
	Provider   string
	Kind       Kind
	StatusCode int
	Err        error
}

// NewUploadError creates an UploadError.
func NewUploadError(provider string, kind Kind, statusCode int, err error) *UploadError {
	return &UploadError{Provider: provider, Kind: kind, StatusCode: statusCode, Err: err}
}

// Credentialf creates a credential-kind UploadError with a formatted message.
func Credentialf(provider, format string, args ...interface{}) *UploadError {
	return NewUploadError(provider, KindCredential, 0, fmt.Errorf(format, args...))
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upload failed (%s, status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s upload failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is maps credential failures onto domain.ErrConfiguration and everything
// else onto domain.ErrUpstream.
func (e *UploadError) Is(target error) bool {
	switch target {
	case domain.ErrConfiguration:
		return e.Kind == KindCredential
	case domain.ErrUpstream:
		return e.Kind != KindCredential
	}
	return false
}
