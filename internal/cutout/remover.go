package cutout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"forwardicons/internal/port"
)

const (
	// maxResultBytes bounds the processed image read back from a provider.
	maxResultBytes = 32 << 20
	maxErrorBytes  = 512
)

// RemoverConfig describes one multipart background-removal endpoint.
type RemoverConfig struct {
	Name       string
	URL        string
	FieldName  string
	AuthHeader string
	AuthPrefix string
	APIKey     string
	Fields     map[string]string
}

// Remover posts an image as multipart/form-data and returns the response bytes.
type Remover struct {
	cfg    RemoverConfig
	client *http.Client
}

// NewRemover creates a Remover. A nil client uses http.DefaultClient.
func NewRemover(cfg RemoverConfig, client *http.Client) *Remover {
	if cfg.FieldName == "" {
		cfg.FieldName = "image_file"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remover{cfg: cfg, client: client}
}

// Name returns the provider name.
func (r *Remover) Name() string {
	return r.cfg.Name
}

func (r *Remover) RemoveBackground(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error) {
	body, contentType, err := r.encode(input)
	if err != nil {
		return nil, &ProviderError{Provider: r.cfg.Name, Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, body)
	if err != nil {
		return nil, &ProviderError{Provider: r.cfg.Name, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	if r.cfg.AuthHeader != "" && r.cfg.APIKey != "" {
		req.Header.Set(r.cfg.AuthHeader, r.cfg.AuthPrefix+r.cfg.APIKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: r.cfg.Name, Err: fmt.Errorf("calling provider: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, &ProviderError{Provider: r.cfg.Name, StatusCode: resp.StatusCode, Err: errors.New(string(snippet))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		return nil, &ProviderError{Provider: r.cfg.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}
	if len(data) == 0 {
		return nil, &ProviderError{Provider: r.cfg.Name, StatusCode: resp.StatusCode, Err: errors.New("empty response body")}
	}

	outType := resp.Header.Get("Content-Type")
	if outType == "" {
		outType = "image/png"
	}
	return &port.CutoutOutput{Data: data, ContentType: outType, Provider: r.cfg.Name}, nil
}

func (r *Remover) encode(input port.CutoutInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range r.cfg.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	filename := input.Filename
	if filename == "" {
		filename = "image"
	}
	partType := input.ContentType
	if partType == "" {
		partType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, r.cfg.FieldName, filename))
	h.Set("Content-Type", partType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(input.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
