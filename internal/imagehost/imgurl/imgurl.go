package imgurl

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
	Name   = "IMGURL"
	apiURL = "https://www.imgurl.org/api/v2/upload"
)

func init() {
	imagehost.RegisterProvider(Name, func(cfg *config.UploadConfig, client *http.Client) (port.ImageHost, error) {
		return New(&cfg.ImgURL, client), nil
	})
}

// Host uploads images with uid/token form credentials.
type Host struct {
	uid      string
	token    string
	albumID  string
	endpoint string
	client   *http.Client
}

// New creates an ImgURL host. A blank APIURL falls back to the public endpoint.
func New(cfg *config.ImgURLConfig, client *http.Client) *Host {
	endpoint := cfg.APIURL
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewWithEndpoint(cfg, client, endpoint)
}

// NewWithEndpoint creates a host pointing at a custom endpoint (for testing).
func NewWithEndpoint(cfg *config.ImgURLConfig, client *http.Client, endpoint string) *Host {
	if client == nil {
		client = http.DefaultClient
	}
	return &Host{
		uid:      cfg.UID,
		token:    cfg.Token,
		albumID:  cfg.AlbumID,
		endpoint: endpoint,
		client:   client,
	}
}

func (h *Host) Name() string { return Name }

func (h *Host) Validate() error { return nil }

// response covers both reply shapes: {code, data:{url}} and a bare {url}.
type response struct {
	Code *json.Number `json:"code"`
	Data *struct {
		URL string `json:"url"`
	} `json:"data"`
	URL string `json:"url"`
	Msg string `json:"msg"`
}

func (h *Host) Upload(ctx context.Context, img domain.UploadFile) (string, error) {
	if h.uid == "" || h.token == "" {
		return "", imagehost.Credentialf(Name, "uid and token must both be configured")
	}

	fields := map[string]string{"uid": h.uid, "token": h.token}
	if h.albumID != "" {
		fields["album_id"] = h.albumID
	}

	resp, err := imagehost.Post(ctx, h.client, imagehost.Request{
		Provider:  Name,
		URL:       h.endpoint,
		FileField: "file",
		File:      img,
		Fields:    fields,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", imagehost.StatusError(Name, resp)
	}

	var body response
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	if body.Code != nil && body.Code.String() != "200" {
		return "", imagehost.NewUploadError(Name, imagehost.KindStatus, resp.StatusCode,
			fmt.Errorf("api returned code %s: %s", body.Code.String(), body.Msg))
	}
	if body.Data != nil && body.Data.URL != "" {
		return body.Data.URL, nil
	}
	if body.URL != "" {
		return body.URL, nil
	}
	return "", imagehost.NewUploadError(Name, imagehost.KindFormat, resp.StatusCode, errors.New("response has no url"))
}
