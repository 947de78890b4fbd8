package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a cached query
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusDisabled:
		return "disabled"
	default:
		return "idle"
	}
}

// Policy decides when a successful entry must be refetched
type Policy struct {
	StaleAfter time.Duration // 0 refetches on every request
	Never      bool          // never stale; only Clear or Invalidate drop it
}

// Lookup is the policy for reference data that is fetched once per session
var Lookup = Policy{Never: true}

// After returns a policy that goes stale after d
func After(d time.Duration) Policy {
	return Policy{StaleAfter: d}
}

func (p Policy) fresh(fetchedAt, now time.Time) bool {
	if p.Never {
		return true
	}
	return now.Sub(fetchedAt) < p.StaleAfter
}

// Result is what a fetch hook hands to a view: the data, if any, and the
// state of the query that produced it
type Result[T any] struct {
	Data      T
	Status    Status
	Err       error
	Stale     bool // Data is older than the policy allows or came from a fallback
	FetchedAt time.Time
}

// OK reports whether the result carries data from a successful fetch
func (r Result[T]) OK() bool { return r.Status == StatusSuccess }

// Failed reports whether the last fetch failed
func (r Result[T]) Failed() bool { return r.Status == StatusError }

// Disabled reports whether the fetch was skipped
func (r Result[T]) Disabled() bool { return r.Status == StatusDisabled }

// Disabled returns the result of a fetch that was skipped because its key is unset
func Disabled[T any]() Result[T] {
	return Result[T]{Status: StatusDisabled}
}

type entry struct {
	data      any
	hasData   bool
	err       error
	status    Status
	fetchedAt time.Time
	policy    Policy
}

// Cache holds query results keyed by resource kind and canonical params.
// It is safe for concurrent use; concurrent fetches of one key share a
// single call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
	now     func() time.Time
	logger  *slog.Logger
}

// New creates an empty cache
func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source; used by tests
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Fetch returns the cached value for key when it is fresh under policy and
// otherwise calls fn. A failed fetch keeps the previous data on the result
// so views can keep showing it next to the error.
func Fetch[T any](ctx context.Context, c *Cache, key string, policy Policy, fn func(context.Context) (T, error)) Result[T] {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.status == StatusSuccess && e.policy.fresh(e.fetchedAt, c.now()) {
		res := toResult[T](e, false)
		c.mu.Unlock()
		return res
	}
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.status = StatusLoading
	e.policy = policy
	c.mu.Unlock()

	v, err, shared := c.group.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if shared {
		c.logger.Debug("cache fetch shared", "key", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The entry may have been invalidated while the call was in flight; the
	// late result still lands in the cache.
	e, ok = c.entries[key]
	if !ok {
		e = &entry{policy: policy}
		c.entries[key] = e
	}

	if err != nil {
		c.logger.Debug("cache fetch failed", "key", key, "error", err)
		e.status = StatusError
		e.err = err
		return toResult[T](e, e.hasData)
	}

	e.data = v
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	e.fetchedAt = c.now()
	return toResult[T](e, false)
}

func toResult[T any](e *entry, stale bool) Result[T] {
	res := Result[T]{
		Status:    e.status,
		Err:       e.err,
		Stale:     stale,
		FetchedAt: e.fetchedAt,
	}
	if e.hasData {
		if data, ok := e.data.(T); ok {
			res.Data = data
		}
	}
	return res
}

// Peek returns the current state of key without fetching
func Peek[T any](c *Cache, key string) (Result[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return Result[T]{Status: StatusIdle}, false
	}
	stale := e.hasData && e.status == StatusSuccess && !e.policy.fresh(e.fetchedAt, c.now())
	return toResult[T](e, stale), true
}

// Invalidate drops every entry whose key starts with prefix and returns how
// many were dropped
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
