package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"forwardicons/internal/catalog"
	"forwardicons/internal/config"
	"forwardicons/internal/domain"
)

const (
	defaultAPIURL   = "https://api.github.com"
	acceptHeader    = "application/vnd.github.v3+json"
	maxGistBytes    = 10 << 20
	defaultFileName = "icons.json"
)

// Store keeps the catalog as one file of a GitHub gist.
// It implements port.CatalogStore.
type Store struct {
	apiURL   string
	gistID   string
	token    string
	fileName string
	client   *http.Client
}

// New creates a gist-backed catalog store.
func New(cfg *config.CatalogConfig, client *http.Client) *Store {
	apiURL := cfg.Gist.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return NewWithEndpoint(cfg, client, apiURL)
}

// NewWithEndpoint creates a store pointing at a custom API base URL (for testing).
func NewWithEndpoint(cfg *config.CatalogConfig, client *http.Client, apiURL string) *Store {
	fileName := cfg.FileName
	if fileName == "" {
		fileName = defaultFileName
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Store{
		apiURL:   strings.TrimRight(apiURL, "/"),
		gistID:   cfg.Gist.ID,
		token:    cfg.Gist.Token,
		fileName: fileName,
		client:   client,
	}
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

type gistResponse struct {
	Files map[string]*gistFile `json:"files"`
}

func (s *Store) gistURL() string {
	return s.apiURL + "/gists/" + s.gistID
}

func (s *Store) Fetch(ctx context.Context) (*domain.CatalogDocument, error) {
	if s.gistID == "" {
		return nil, fmt.Errorf("%w: gist id not configured", domain.ErrConfiguration)
	}

	body, err := s.get(ctx, s.gistURL())
	if err != nil {
		return nil, err
	}

	var gist gistResponse
	if err := json.Unmarshal(body, &gist); err != nil {
		return nil, fmt.Errorf("%w: decoding gist: %w", domain.ErrMerge, err)
	}

	file, ok := gist.Files[s.fileName]
	if !ok || file == nil {
		return domain.DefaultCatalog(), nil
	}

	content := []byte(file.Content)
	if file.Truncated && file.RawURL != "" {
		content, err = s.get(ctx, file.RawURL)
		if err != nil {
			return nil, err
		}
	}
	return catalog.DecodeDocument(content), nil
}

func (s *Store) Replace(ctx context.Context, doc *domain.CatalogDocument) error {
	if s.gistID == "" {
		return fmt.Errorf("%w: gist id not configured", domain.ErrConfiguration)
	}

	content, err := catalog.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	payload, err := json.Marshal(map[string]interface{}{
		"files": map[string]interface{}{
			s.fileName: map[string]string{"content": string(content)},
		},
	})
	if err != nil {
		return fmt.Errorf("marshaling gist update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.gistURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: updating gist: %w", domain.ErrMerge, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxGistBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: gist update returned status %d", domain.ErrMerge, resp.StatusCode)
	}
	return nil
}

func (s *Store) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching gist: %w", domain.ErrMerge, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gist fetch returned status %d", domain.ErrMerge, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGistBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading gist: %w", domain.ErrMerge, err)
	}
	return body, nil
}

func (s *Store) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}
