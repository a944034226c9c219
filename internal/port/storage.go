package port

import (
	"context"
	"io"
)

// Cache-Control values for stored objects. Icons are written once under a
// fresh key; the catalog document is rewritten in place.
const (
	CacheImmutable = "public, max-age=31536000, immutable"
	CacheNoStore   = "no-cache, no-store"
)

// UploadInput describes one object write.
type UploadInput struct {
	Bucket       string
	Key          string
	Body         io.Reader
	ContentType  string
	CacheControl string
	Size         int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage is the object store behind the S3 image host and the S3
// catalog backend. Download wraps domain.ErrNotFound when the key is absent.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
