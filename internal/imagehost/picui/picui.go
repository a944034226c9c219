package picui

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
	Name   = "PICUI"
	apiURL = "https://picui.cn/api/v1/upload"
)

func init() {
	imagehost.RegisterProvider(Name, func(cfg *config.UploadConfig, client *http.Client) (port.ImageHost, error) {
		return New(&cfg.PicUI, client), nil
	})
}

// Host uploads images with a bearer token. Anonymous uploads are never attempted.
type Host struct {
	token    string
	fields   map[string]string
	endpoint string
	client   *http.Client
}

// New creates a PICUI host. A blank APIURL falls back to the public endpoint.
func New(cfg *config.PicUIConfig, client *http.Client) *Host {
	endpoint := cfg.APIURL
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewWithEndpoint(cfg, client, endpoint)
}

// NewWithEndpoint creates a host pointing at a custom endpoint (for testing).
func NewWithEndpoint(cfg *config.PicUIConfig, client *http.Client, endpoint string) *Host {
	if client == nil {
		client = http.DefaultClient
	}
	permission := cfg.Permission
	if permission == "" {
		permission = "0"
	}
	fields := map[string]string{"permission": permission}
	if cfg.StrategyID != "" {
		fields["strategy_id"] = cfg.StrategyID
	}
	if cfg.AlbumID != "" {
		fields["album_id"] = cfg.AlbumID
	}
	if cfg.ExpiredAt != "" {
		fields["expired_at"] = cfg.ExpiredAt
	}
	return &Host{token: cfg.Token, fields: fields, endpoint: endpoint, client: client}
}

func (h *Host) Name() string { return Name }

// Validate rejects a host with no token so the request fails before any upload.
func (h *Host) Validate() error {
	if h.token == "" {
		return imagehost.Credentialf(Name, "token not configured; anonymous uploads are disabled")
	}
	return nil
}

type response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		Links *struct {
			URL string `json:"url"`
		} `json:"links"`
	} `json:"data"`
}

func (h *Host) Upload(ctx context.Context, img domain.UploadFile) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}

	resp, err := imagehost.Post(ctx, h.client, imagehost.Request{
		Provider:  Name,
		URL:       h.endpoint,
		FileField: "file",
		File:      img,
		Fields:    h.fields,
		Headers: map[string]string{
			"Accept":        "application/json",
			"Authorization": "Bearer " + h.token,
		},
	})
	if err != nil {
		return "", err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", imagehost.NewUploadError(Name, imagehost.KindAuth, resp.StatusCode,
			fmt.Errorf("token rejected: %s", imagehost.Truncate(string(resp.Body), 300)))
	case resp.StatusCode != http.StatusOK:
		return "", imagehost.StatusError(Name, resp)
	}

	var body response
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	if !body.Status {
		return "", imagehost.NewUploadError(Name, imagehost.KindStatus, resp.StatusCode, fmt.Errorf("api rejected upload: %s", body.Message))
	}
	if body.Data == nil || body.Data.Links == nil || body.Data.Links.URL == "" {
		return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, errors.New("response has no data.links.url"))
	}
	return body.Data.Links.URL, nil
}
