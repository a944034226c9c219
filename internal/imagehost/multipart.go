package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"forwardicons/internal/domain"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 1 << 20

// Request describes a single multipart POST to an image host.
type Request struct {
	Provider  string
	URL       string
	FileField string
	File      domain.UploadFile
	Fields    map[string]string
	Headers   map[string]string
}

// Response is the raw provider reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// Post sends req as multipart/form-data. Transport failures come back as a
// network-kind UploadError; the status code is left for the caller to judge.
func Post(ctx context.Context, client *http.Client, req Request) (*Response, error) {
	body, contentType, err := encode(req)
	if err != nil {
		return nil, NewUploadError(req.Provider, KindNetwork, 0, fmt.Errorf("encoding multipart body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, body)
	if err != nil {
		return nil, NewUploadError(req.Provider, KindNetwork, 0, fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", contentType)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewUploadError(req.Provider, KindNetwork, 0, fmt.Errorf("calling %s: %w", req.Provider, err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewUploadError(req.Provider, KindNetwork, resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func encode(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range req.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	contentType := req.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, req.FileField, req.File.Filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.File.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// StatusError builds a status-kind UploadError carrying a truncated body.
func StatusError(provider string, resp *Response) *UploadError {
	return NewUploadError(provider, KindStatus, resp.StatusCode, errors.New(Truncate(string(resp.Body), 300)))
}

// Truncate shortens s to at most maxLen bytes.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
