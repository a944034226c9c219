package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"forwardicons/internal/domain"
)

// ReadXLSX reads name/url rows from the first sheet of a workbook. A first
// row whose first cell is "name" (any case) is treated as a header.
func ReadXLSX(r io.Reader) ([]domain.IconRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return rowsToIcons(rows), nil
}

// ReadCSV reads name/url rows from CSV, tolerating a leading BOM and header.
func ReadCSV(r io.Reader) ([]domain.IconRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], string(BOM))
	}
	return rowsToIcons(rows), nil
}

// rowsToIcons skips a header row and any row without both a name and a URL.
func rowsToIcons(rows [][]string) []domain.IconRecord {
	var icons []domain.IconRecord
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		name, url := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		if name == "" || url == "" {
			continue
		}
		icons = append(icons, domain.IconRecord{Name: name, URL: url})
	}
	return icons
}
