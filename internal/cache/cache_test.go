package cache_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newCache() (*cache.Cache, *clock) {
	c := cache.New(adapter.NullLogger())
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.SetClock(clk.Now)
	return c, clk
}

func counter(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestFetch_FreshHitSkipsCall(t *testing.T) {
	c, clk := newCache()
	var calls atomic.Int32

	res := cache.Fetch(context.Background(), c, "games", cache.After(30*time.Second), counter(&calls, "a"))
	require.True(t, res.OK())
	assert.Equal(t, "a", res.Data)

	clk.Advance(10 * time.Second)
	res = cache.Fetch(context.Background(), c, "games", cache.After(30*time.Second), counter(&calls, "b"))
	assert.Equal(t, "a", res.Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_StaleEntryRefetches(t *testing.T) {
	c, clk := newCache()
	var calls atomic.Int32

	cache.Fetch(context.Background(), c, "games", cache.After(30*time.Second), counter(&calls, "a"))
	clk.Advance(31 * time.Second)

	peek, ok := cache.Peek[string](c, "games")
	require.True(t, ok)
	assert.True(t, peek.Stale)

	res := cache.Fetch(context.Background(), c, "games", cache.After(30*time.Second), counter(&calls, "b"))
	assert.Equal(t, "b", res.Data)
	assert.False(t, res.Stale)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_LookupPolicyNeverStale(t *testing.T) {
	c, clk := newCache()
	var calls atomic.Int32

	cache.Fetch(context.Background(), c, "metadata", cache.Lookup, counter(&calls, "m"))
	clk.Advance(24 * time.Hour)
	res := cache.Fetch(context.Background(), c, "metadata", cache.Lookup, counter(&calls, "m2"))

	assert.Equal(t, "m", res.Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ErrorKeepsPreviousData(t *testing.T) {
	c, clk := newCache()
	boom := errors.New("boom")

	cache.Fetch(context.Background(), c, "health", cache.After(time.Second), func(context.Context) (string, error) {
		return "healthy", nil
	})
	clk.Advance(2 * time.Second)

	res := cache.Fetch(context.Background(), c, "health", cache.After(time.Second), func(context.Context) (string, error) {
		return "", boom
	})
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, "healthy", res.Data)
	assert.True(t, res.Stale)
}

func TestFetch_ErrorWithoutDataIsNotStale(t *testing.T) {
	c, _ := newCache()
	res := cache.Fetch(context.Background(), c, "games/7", cache.After(time.Second), func(context.Context) (string, error) {
		return "", errors.New("down")
	})
	assert.True(t, res.Failed())
	assert.False(t, res.Stale)
	assert.Empty(t, res.Data)
}

func TestFetch_ConcurrentCallsShareOneRequest(t *testing.T) {
	c, _ := newCache()
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]cache.Result[int], 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Fetch(context.Background(), c, "hacks?page=1", cache.After(time.Minute), fn)
		}(i)
	}

	// Let the callers pile up behind the first one
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, 42, r.Data)
	}
}

func TestInvalidate_DropsPrefix(t *testing.T) {
	c, _ := newCache()
	var calls atomic.Int32
	for _, k := range []string{"games?page=1", "games?page=2", "hacks?page=1"} {
		cache.Fetch(context.Background(), c, k, cache.Lookup, counter(&calls, k))
	}

	assert.Equal(t, 2, c.Invalidate("games"))
	assert.Equal(t, 1, c.Len())

	_, ok := cache.Peek[string](c, "games?page=1")
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestPeek_Missing(t *testing.T) {
	c, _ := newCache()
	res, ok := cache.Peek[string](c, "nothing")
	assert.False(t, ok)
	assert.Equal(t, cache.StatusIdle, res.Status)
}

func TestDisabled(t *testing.T) {
	res := cache.Disabled[string]()
	assert.True(t, res.Disabled())
	assert.False(t, res.OK())
	assert.Equal(t, "disabled", res.Status.String())
}

func TestKey_CanonicalOrder(t *testing.T) {
	a := url.Values{}
	a.Set("q", "mario")
	a.Set("page", "2")
	b := url.Values{}
	b.Set("page", "2")
	b.Set("q", "mario")

	assert.Equal(t, cache.Key("games", a), cache.Key("games", b))
	assert.Equal(t, "games/12/hacks?page=2&q=mario", cache.Key("games", a, 12, "hacks"))
	assert.Equal(t, "metadata", cache.Key("metadata", nil))
}
