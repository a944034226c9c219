package port

import (
	"context"

	"forwardicons/internal/domain"
)

// ImageHost abstracts a third-party image hosting backend.
type ImageHost interface {
	// Name is the upper-case service name the host is registered under.
	Name() string
	// Validate reports configuration that makes every upload fail, so callers
	// can reject a request before any network call.
	Validate() error
	// Upload stores one image and returns its public URL.
	Upload(ctx context.Context, file domain.UploadFile) (string, error)
}
