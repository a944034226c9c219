// Command finalize merges every queued upload into the icon catalog, the same
// as POST /api/finalize_batch. It only sees a queue shared through Postgres.
// Usage: go run ./cmd/finalize
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"forwardicons/internal/bootstrap"
	"forwardicons/internal/config"
	"forwardicons/internal/logging"
	"forwardicons/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("finalize failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if !cfg.Coordination.UsesPostgres() {
		return errors.New("finalize needs FORWARD_COORDINATION_MODE=postgres; the local queue lives inside the server process")
	}

	pipeline, err := bootstrap.NewPipeline(cfg, metrics.NewDefault())
	if err != nil {
		return fmt.Errorf("initializing catalog: %w", err)
	}
	defer pipeline.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pending, err := pipeline.Batch.Pending(ctx)
	if err != nil {
		return fmt.Errorf("listing pending entries: %w", err)
	}
	slog.Info("pending entries", "count", len(pending))

	result, err := pipeline.Batch.DrainAndMerge(ctx)
	if err != nil {
		return fmt.Errorf("merging pending entries: %w", err)
	}
	for _, rec := range result.Icons {
		slog.Info("merged", "name", rec.Name, "url", rec.URL)
	}
	slog.Info("finalize complete", "merged", result.Merged)
	return nil
}
