package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelens/nodelens/pkg/types"
)

func newTestHandler(t *testing.T) (*ParquetHandler, string) {
	t.Helper()
	dir := t.TempDir()
	next := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	h, err := NewParquetHandler(next, dir)
	require.NoError(t, err)
	return h, dir
}

func TestParquetHandlerBuffersErrors(t *testing.T) {
	h, dir := newTestHandler(t)
	logger := slog.New(h)

	ctx := context.WithValue(context.Background(), types.ContextKeyRequestID, "req-1")
	logger.ErrorContext(ctx, "store unavailable", "attempt", 2)
	logger.InfoContext(ctx, "ignored")

	// Nothing written until the batch fills or Flush is called.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, h.Flush())

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".parquet"))
	assert.NotEmpty(t, filepath.Join(dir, entries[0].Name()))
}

func TestParquetHandlerFlushEmptyIsNoop(t *testing.T) {
	h, dir := newTestHandler(t)

	require.NoError(t, h.Flush())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
