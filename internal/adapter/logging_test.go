package adapter_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingReporter struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	err     error
}

func (r *recordingReporter) ReportLog(_ context.Context, entry domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return r.err
}

func (r *recordingReporter) Entries() []domain.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LogEntry(nil), r.entries...)
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "romshelf.log")
	logger, err := adapter.SetupLogger(&adapter.LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("hello", "kind", "games")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"kind":"games"`)
}

func TestRemoteHandler_ForwardsWarningsAndErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	reporter := &recordingReporter{}
	h := adapter.NewRemoteHandler(adapter.NullLogger().Handler(), reporter)
	logger := slog.New(h).With("session", "abc")

	logger.Info("ignored")
	logger.Warn("slow response", "path", "/games")
	logger.Error("render panic", "stack", "goroutine 1", "route", "/hacks/3")
	h.Close()

	entries := reporter.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "slow response session=abc path=/games", entries[0].Message)

	assert.Equal(t, "error", entries[1].Level)
	assert.Equal(t, "render panic session=abc", entries[1].Message)
	assert.Equal(t, "goroutine 1", entries[1].Stack)
	assert.Equal(t, "/hacks/3", entries[1].URL)
	assert.NotEmpty(t, entries[1].Timestamp)
}

func TestRemoteHandler_SwallowsDeliveryErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	reporter := &recordingReporter{err: errors.New("boom")}
	h := adapter.NewRemoteHandler(adapter.NullLogger().Handler(), reporter)
	logger := slog.New(h)

	assert.NotPanics(t, func() { logger.Error("first") })
	h.Close()
	h.Close()

	// Entries after close are dropped
	logger.Error("after close")
	assert.Len(t, reporter.Entries(), 1)
}
