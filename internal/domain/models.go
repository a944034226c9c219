package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultCatalogName is the document name used when the remote catalog is
// missing or unreadable.
const DefaultCatalogName = "Forward"

// IconRecord is one name/url pair in the catalog.
type IconRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CatalogDocument is the single shared document holding every recorded icon.
// Icons keeps insertion order.
type CatalogDocument struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Icons       []IconRecord `json:"icons"`
}

// DefaultCatalog returns the empty document substituted for a missing or
// undecodable remote catalog.
func DefaultCatalog() *CatalogDocument {
	return &CatalogDocument{Name: DefaultCatalogName, Description: "", Icons: []IconRecord{}}
}

// Clone returns a deep copy so callers can mutate Icons freely.
func (d *CatalogDocument) Clone() *CatalogDocument {
	icons := make([]IconRecord, len(d.Icons))
	copy(icons, d.Icons)
	return &CatalogDocument{Name: d.Name, Description: d.Description, Icons: icons}
}

// PendingEntry is an uploaded icon waiting to be merged into the catalog by
// finalize. ID is assigned by the pending store and increases monotonically.
type PendingEntry struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UploadFile is one image of an upload request.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DisplayName returns the filename without its extension.
func (f UploadFile) DisplayName() string {
	base := filepath.Base(f.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileOutcome reports what happened to one file of an upload request.
type FileOutcome struct {
	OK      bool   `json:"ok"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// FinalizeResult reports the outcome of draining the pending batch.
type FinalizeResult struct {
	Merged int          `json:"merged"`
	Icons  []IconRecord `json:"icons"`
}
