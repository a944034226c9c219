package export

import (
	"encoding/csv"
	"io"

	"forwardicons/internal/domain"
)

// BOM is the UTF-8 byte order mark written first so Excel on Windows detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by every export format.
var columns = []string{"Name", "URL"}

// Writer wraps csv.Writer for exporting catalog icons as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteIcons writes one row per icon in catalog order.
func (w *Writer) WriteIcons(icons []domain.IconRecord) error {
	for _, icon := range icons {
		if err := w.csv.Write([]string{icon.Name, icon.URL}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and every icon of doc to out.
func WriteCSV(out io.Writer, doc *domain.CatalogDocument) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteIcons(doc.Icons); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
