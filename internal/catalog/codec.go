package catalog

import (
	"bytes"
	"encoding/json"

	"forwardicons/internal/domain"
)

// DecodeDocument parses stored catalog content. Anything that is not a JSON
// object (including null) yields the default document. A missing name takes
// the default name and a missing icons list becomes empty.
func DecodeDocument(content []byte) *domain.CatalogDocument {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(content, &fields); err != nil || fields == nil {
		return domain.DefaultCatalog()
	}
	var doc domain.CatalogDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return domain.DefaultCatalog()
	}
	if _, ok := fields["name"]; !ok {
		doc.Name = domain.DefaultCatalogName
	}
	if doc.Icons == nil {
		doc.Icons = []domain.IconRecord{}
	}
	return &doc
}

// EncodeDocument renders doc as two-space indented JSON.
func EncodeDocument(doc *domain.CatalogDocument) ([]byte, error) {
	out := doc
	if out.Icons == nil {
		out = doc.Clone()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
