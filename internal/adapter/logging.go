package adapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/romshelf/internal/domain"
)

// SetupLogger initializes the slog logger with file output
func SetupLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	// Expand ~ in path
	logPath := cfg.File
	if strings.HasPrefix(logPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		logPath = filepath.Join(home, logPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	})

	return slog.New(handler), nil
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	remoteQueueSize = 32
	remoteTimeout   = 5 * time.Second
)

// remoteSink is the delivery side shared by a RemoteHandler and its derived handlers
type remoteSink struct {
	reporter domain.LogReporter
	queue    chan domain.LogEntry
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func (s *remoteSink) run() {
	defer s.wg.Done()
	for entry := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		// Delivery is best-effort
		_ = s.reporter.ReportLog(ctx, entry)
		cancel()
	}
}

func (s *remoteSink) enqueue(entry domain.LogEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- entry:
	default:
		// Queue full, drop
	}
}

// RemoteHandler wraps a slog.Handler and forwards warnings and errors to the
// archive log endpoint from a single background worker. Delivery failures and
// a full queue drop entries silently.
type RemoteHandler struct {
	next  slog.Handler
	sink  *remoteSink
	attrs []slog.Attr
	group string
}

// NewRemoteHandler starts the delivery worker. Close must be called to stop it.
func NewRemoteHandler(next slog.Handler, reporter domain.LogReporter) *RemoteHandler {
	sink := &remoteSink{
		reporter: reporter,
		queue:    make(chan domain.LogEntry, remoteQueueSize),
	}
	sink.wg.Add(1)
	go sink.run()
	return &RemoteHandler{next: next, sink: sink}
}

// Enabled implements slog.Handler
func (h *RemoteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn || h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *RemoteHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}
	if r.Level >= slog.LevelWarn {
		h.sink.enqueue(h.entry(r))
	}
	return err
}

// WithAttrs implements slog.Handler
func (h *RemoteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &RemoteHandler{next: h.next.WithAttrs(attrs), sink: h.sink, attrs: merged, group: h.group}
}

// WithGroup implements slog.Handler
func (h *RemoteHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &RemoteHandler{next: h.next.WithGroup(name), sink: h.sink, attrs: h.attrs, group: group}
}

// Close stops accepting entries and waits for queued ones to be delivered
func (h *RemoteHandler) Close() {
	h.sink.mu.Lock()
	if h.sink.closed {
		h.sink.mu.Unlock()
		return
	}
	h.sink.closed = true
	close(h.sink.queue)
	h.sink.mu.Unlock()
	h.sink.wg.Wait()
}

func (h *RemoteHandler) entry(r slog.Record) domain.LogEntry {
	var b strings.Builder
	b.WriteString(r.Message)

	var stack, url string
	write := func(a slog.Attr) {
		switch a.Key {
		case "stack":
			stack = a.Value.String()
			return
		case "route":
			url = a.Value.String()
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Any())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	level := domain.LogLevelWarn
	if r.Level >= slog.LevelError {
		level = domain.LogLevelError
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	return domain.LogEntry{
		Level:     level,
		Message:   b.String(),
		Stack:     stack,
		URL:       url,
		Timestamp: ts.UTC().Format(time.RFC3339),
	}
}
