package s3host

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"forwardicons/internal/config"
	"forwardicons/internal/domain"
	"forwardicons/internal/imagehost"
	"forwardicons/internal/port"
)

// Name is the service name used in configuration.
const Name = "S3"

// Host stores uploaded images in an S3 bucket and returns a public URL.
type Host struct {
	storage port.ObjectStorage
	cfg     config.S3HostConfig
	timeout time.Duration
	now     func() time.Time
}

// New creates an S3 image host. timeout bounds each object write; zero
// means 30s.
func New(storage port.ObjectStorage, cfg *config.S3HostConfig, timeout time.Duration) *Host {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Host{storage: storage, cfg: *cfg, timeout: timeout, now: time.Now}
}

// Register makes the S3 host available to imagehost.New. The storage client
// is created by the caller because it is shared with the S3 catalog store.
func Register(storage port.ObjectStorage) {
	imagehost.RegisterProvider(Name, func(cfg *config.UploadConfig, _ *http.Client) (port.ImageHost, error) {
		return New(storage, &cfg.S3, cfg.Timeout()), nil
	})
}

func (h *Host) Name() string { return Name }

func (h *Host) Validate() error {
	if h.storage == nil {
		return imagehost.Credentialf(Name, "object storage not initialized")
	}
	if h.cfg.Bucket == "" {
		return imagehost.Credentialf(Name, "bucket not configured")
	}
	return nil
}

// Upload writes the image under <prefix>/YYYY/MM/DD/<uuid><ext>.
func (h *Host) Upload(ctx context.Context, img domain.UploadFile) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}

	key := h.objectKey(img.Filename)
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	out, err := h.storage.Upload(ctx, port.UploadInput{
		Bucket:       h.cfg.Bucket,
		Key:          key,
		Body:         bytes.NewReader(img.Data),
		ContentType:  contentType,
		CacheControl: port.CacheImmutable,
		Size:         int64(len(img.Data)),
	})
	if err != nil {
		return "", imagehost.NewUploadError(Name, imagehost.KindNetwork, 0, fmt.Errorf("storing %s: %w", key, err))
	}

	if h.cfg.PublicBaseURL != "" {
		return h.cfg.PublicBaseURL + "/" + key, nil
	}
	return out.Location, nil
}

func (h *Host) objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	datePath := h.now().UTC().Format("2006/01/02")
	return path.Join(h.cfg.KeyPrefix, datePath, uuid.New().String()+ext)
}
