package search_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGames struct {
	calls  atomic.Int32
	params []domain.ListParams
	mu     sync.Mutex
	items  []domain.Game
}

func (f *fakeGames) List(_ context.Context, p domain.ListParams) cache.Result[domain.Page[domain.Game]] {
	f.calls.Add(1)
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()
	page := domain.Page[domain.Game]{Items: f.items, Total: len(f.items), Page: 1, PageSize: p.PageSize}.Normalize()
	return cache.Result[domain.Page[domain.Game]]{Data: page, Status: cache.StatusSuccess}
}

type fakeHacks struct {
	calls atomic.Int32
	err   error
	items []domain.Hack
}

func (f *fakeHacks) List(_ context.Context, p domain.ListParams) cache.Result[domain.Page[domain.Hack]] {
	f.calls.Add(1)
	if f.err != nil {
		return cache.Result[domain.Page[domain.Hack]]{Status: cache.StatusError, Err: f.err}
	}
	page := domain.Page[domain.Hack]{Items: f.items, Total: 12, Page: 1, PageSize: p.PageSize}.Normalize()
	return cache.Result[domain.Page[domain.Hack]]{Data: page, Status: cache.StatusSuccess}
}

type fakeTranslations struct {
	calls atomic.Int32
	items []domain.Translation
}

func (f *fakeTranslations) List(_ context.Context, p domain.ListParams) cache.Result[domain.Page[domain.Translation]] {
	f.calls.Add(1)
	page := domain.Page[domain.Translation]{Items: f.items, Total: len(f.items), Page: 1, PageSize: p.PageSize}.Normalize()
	return cache.Result[domain.Page[domain.Translation]]{Data: page, Status: cache.StatusSuccess}
}

func newAggregator() (*search.Aggregator, *fakeGames, *fakeHacks, *fakeTranslations) {
	games := &fakeGames{items: []domain.Game{
		{GameKey: 3, Title: "Mother 3"},
		{GameKey: 1, Title: "EarthBound"},
	}}
	hacks := &fakeHacks{items: []domain.Hack{{HackKey: 7, Title: "EarthBound Halloween Hack", GameTitle: "EarthBound"}}}
	translations := &fakeTranslations{items: []domain.Translation{{TransKey: 9}}}
	agg := search.NewAggregator(games, hacks, translations, search.Options{}, adapter.NullLogger())
	return agg, games, hacks, translations
}

func TestRun_ShortQueryIssuesNoRequest(t *testing.T) {
	agg, games, hacks, translations := newAggregator()

	for _, q := range []string{"", "e", " a", "  e  ", "é"} {
		res := agg.Run(context.Background(), q)
		assert.True(t, res.NeedMoreInput, "query %q", q)
		assert.False(t, res.Loading())
		assert.False(t, res.Empty())
	}

	assert.Zero(t, games.calls.Load())
	assert.Zero(t, hacks.calls.Load())
	assert.Zero(t, translations.calls.Load())
}

func TestRun_OneRequestPerKind(t *testing.T) {
	agg, games, hacks, translations := newAggregator()

	res := agg.Run(context.Background(), " earth ")
	require.False(t, res.NeedMoreInput)
	assert.Equal(t, "earth", res.Query)
	assert.False(t, res.Loading())

	assert.Equal(t, int32(1), games.calls.Load())
	assert.Equal(t, int32(1), hacks.calls.Load())
	assert.Equal(t, int32(1), translations.calls.Load())
	assert.Equal(t, domain.ListParams{Query: "earth", Page: 1, PageSize: 5}, games.params[0])
}

func TestRun_RanksAndRoutes(t *testing.T) {
	agg, _, _, _ := newAggregator()
	res := agg.Run(context.Background(), "earth")

	g := res.Slots[search.SlotGames]
	require.Len(t, g.Items, 2)
	// EarthBound is a closer match even though the archive listed it second
	assert.Equal(t, "EarthBound", g.Items[0].Title)
	assert.Equal(t, "/games/1", g.Items[0].Route)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, g.Items[0].MatchedIndexes)

	h := res.Slots[search.SlotHacks]
	assert.Equal(t, "/hacks/7", h.Items[0].Route)
	assert.Equal(t, 12, h.Total)

	tr := res.Slots[search.SlotTranslations]
	assert.Equal(t, "Unknown Game", tr.Items[0].Title)
	assert.Equal(t, "/translations/9", tr.Items[0].Route)

	assert.Len(t, res.Suggestions(), 4)
}

func TestRun_SlotFailureIsIsolated(t *testing.T) {
	agg, _, hacks, _ := newAggregator()
	hacks.err = domain.ErrServerUnavailable

	res := agg.Run(context.Background(), "earth")
	assert.Equal(t, cache.StatusSuccess, res.Slots[search.SlotGames].Status)
	assert.Equal(t, cache.StatusError, res.Slots[search.SlotHacks].Status)
	assert.True(t, errors.Is(res.Slots[search.SlotHacks].Err, domain.ErrServerUnavailable))
	assert.False(t, res.Empty())
}

func TestRun_AllGroupsEmpty(t *testing.T) {
	games := &fakeGames{}
	hacks := &fakeHacks{}
	translations := &fakeTranslations{}
	agg := search.NewAggregator(games, hacks, translations, search.Options{PageSize: 3}, adapter.NullLogger())

	res := agg.Run(context.Background(), "zz")
	assert.True(t, res.Empty())
	assert.Equal(t, 3, games.params[0].PageSize)
}

func TestResult_LoadingAndEmpty(t *testing.T) {
	agg, _, _, _ := newAggregator()

	res, ok := agg.Start("mario")
	require.True(t, ok)
	assert.True(t, res.Loading())
	assert.False(t, res.Empty())

	res.Set(search.SlotResult{Slot: search.SlotGames, Status: cache.StatusSuccess})
	res.Set(search.SlotResult{Slot: search.SlotHacks, Status: cache.StatusError, Err: errors.New("x")})
	assert.True(t, res.Loading())

	res.Set(search.SlotResult{Slot: search.SlotTranslations, Status: cache.StatusSuccess})
	assert.False(t, res.Loading())
	assert.True(t, res.Empty())
}

func TestSlot_Labels(t *testing.T) {
	assert.Equal(t, "Games", search.SlotGames.Label())
	assert.Equal(t, "ROM Hacks", search.SlotHacks.Label())
	assert.Equal(t, "Translations", search.SlotTranslations.Label())
}
