// Command importicons merges name/url rows from an Excel or CSV sheet into
// the icon catalog. Names that already exist are suffixed the same way
// uploads are.
// Usage: go run ./cmd/importicons icons.xlsx
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"forwardicons/internal/bootstrap"
	"forwardicons/internal/config"
	"forwardicons/internal/domain"
	"forwardicons/internal/export"
	"forwardicons/internal/logging"
	"forwardicons/internal/metrics"
)

const batchSize = 500

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: importicons <file.xlsx|file.csv>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.InitLogger(cfg.Log.Level, cfg.Log.Format)

	icons, err := readIcons(path)
	if err != nil {
		return err
	}
	if len(icons) == 0 {
		slog.Info("no rows to import", "file", path)
		return nil
	}
	slog.Info("read icons", "file", path, "count", len(icons))

	pipeline, err := bootstrap.NewPipeline(cfg, metrics.NewDefault())
	if err != nil {
		return fmt.Errorf("initializing catalog: %w", err)
	}
	defer pipeline.Close()

	ctx := context.Background()
	imported := 0
	for start := 0; start < len(icons); start += batchSize {
		end := min(start+batchSize, len(icons))
		result, err := pipeline.Merger.Merge(ctx, icons[start:end])
		if err != nil {
			return fmt.Errorf("merging rows %d-%d: %w", start+1, end, err)
		}
		imported += len(result.Resolved)
		for i, rec := range result.Resolved {
			if rec.Name != icons[start+i].Name {
				slog.Info("renamed on import", "requested", icons[start+i].Name, "stored", rec.Name)
			}
		}
		slog.Info("merged batch", "rows", end-start, "total", imported)
	}

	slog.Info("import complete", "imported", imported)
	return nil
}

func readIcons(path string) ([]domain.IconRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.ReadXLSX(f)
	case ".csv":
		return export.ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}
