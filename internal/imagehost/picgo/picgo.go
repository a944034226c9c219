package picgo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"forwardicons/internal/config"
	"forwardicons/internal/domain"
	"forwardicons/internal/imagehost"
	"forwardicons/internal/port"
)

const (
	// Name is the service name used in configuration.
	Name   = "PICGO"
	apiURL = "https://www.picgo.net/api/1/upload"
)

func init() {
	imagehost.RegisterProvider(Name, func(cfg *config.UploadConfig, client *http.Client) (port.ImageHost, error) {
		return New(&cfg.PicGo, client), nil
	})
}

// Host uploads images with an API key header.
type Host struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// New creates a PicGo host. A blank APIURL falls back to the public endpoint.
func New(cfg *config.PicGoConfig, client *http.Client) *Host {
	endpoint := cfg.APIURL
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewWithEndpoint(cfg, client, endpoint)
}

// NewWithEndpoint creates a host pointing at a custom endpoint (for testing).
func NewWithEndpoint(cfg *config.PicGoConfig, client *http.Client, endpoint string) *Host {
	if client == nil {
		client = http.DefaultClient
	}
	return &Host{apiKey: cfg.APIKey, endpoint: endpoint, client: client}
}

func (h *Host) Name() string { return Name }

// Validate always passes; a missing key surfaces per file at upload time.
func (h *Host) Validate() error { return nil }

func (h *Host) Upload(ctx context.Context, img domain.UploadFile) (string, error) {
	if h.apiKey == "" {
		return "", imagehost.Credentialf(Name, "api key not configured")
	}

	resp, err := imagehost.Post(ctx, h.client, imagehost.Request{
		Provider:  Name,
		URL:       h.endpoint,
		FileField: "source",
		File:      img,
		Headers:   map[string]string{"X-API-Key": h.apiKey},
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", imagehost.StatusError(Name, resp)
	}

	var body struct {
		Image *struct {
			URL string `json:"url"`
		} `json:"image"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	if body.Image == nil || body.Image.URL == "" {
		return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, errors.New("response has no image.url"))
	}
	return body.Image.URL, nil
}
