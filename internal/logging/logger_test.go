package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Info("upload.Forward: stored", "provider", "PICGO")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "upload.Forward: stored", entry["msg"])
	assert.Equal(t, "PICGO", entry["provider"])
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNew_AddsRequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json").With("component", "catalog")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "catalog.Merger: merged")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "catalog", entry["component"])
}

func TestNew_NoRequestIDWithoutContextValue(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").InfoContext(context.Background(), "startup")

	assert.NotContains(t, buf.String(), "request_id")
}
