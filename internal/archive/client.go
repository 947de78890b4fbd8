package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/romshelf/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	healthRetries  = 1
	healthRetryGap = 500 * time.Millisecond
	userAgent      = "romshelf"
)

// Client implements domain.ArchiveSource over the archive REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new archive API client. baseURL includes the API
// prefix, e.g. http://localhost:8000/api/v1.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET against the archive API and returns the body.
// Only health probes retry; every other call fails fast.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, retries int) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			c.logger.Debug("retrying request", "attempt", attempt, "delay", healthRetryGap, "url", reqURL)
			select {
			case <-time.After(healthRetryGap):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		c.logger.Debug("archive request", "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("archive request failed", "url", reqURL, "error", err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrServerUnavailable, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		case resp.StatusCode >= 500:
			c.logger.Warn("archive server error",
				"status", resp.StatusCode,
				"body", truncate(string(body), 200),
				"attempt", attempt,
				"path", path,
			)
			lastErr = fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
			continue
		default:
			c.logger.Error("archive request error", "status", resp.StatusCode, "path", path, "body", truncate(string(body), 200))
			return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
		}
	}

	c.logger.Error("archive request failed", "error", lastErr, "url", reqURL, "retries", retries)
	return nil, lastErr
}

// getJSON fetches path and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query, 0)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// getPage fetches a paginated endpoint and normalizes the envelope
func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) (domain.Page[T], error) {
	var page domain.Page[T]
	if err := c.getJSON(ctx, path, query, &page); err != nil {
		return domain.Page[T]{}, err
	}
	return page.Normalize(), nil
}

// getDetail fetches a single record
func getDetail[T any](ctx context.Context, c *Client, kind domain.Kind, id int) (T, error) {
	var rec T
	err := c.getJSON(ctx, fmt.Sprintf("/%s/%d", kind, id), nil, &rec)
	return rec, err
}

// Health probes the backend, retrying once on failure
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	body, err := c.doRequest(ctx, "/health", nil, healthRetries)
	if err != nil {
		return domain.Health{}, err
	}
	var h domain.Health
	if err := json.Unmarshal(body, &h); err != nil {
		return domain.Health{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return h, nil
}

// ReportLog posts a log entry to the backend. Callers treat the error as
// informational; nothing depends on delivery.
func (c *Client) ReportLog(ctx context.Context, entry domain.LogEntry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if entry.UserAgent == "" {
		entry.UserAgent = userAgent
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logs", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServerUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
