package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/debounce"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/mmcdole/romshelf/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func gameSpec(t *testing.T) ListSpec {
	t.Helper()
	spec, ok := SpecFor(domain.KindGame)
	require.True(t, ok)
	return spec
}

func TestListSpec_Params(t *testing.T) {
	spec := gameSpec(t)

	tests := []struct {
		name  string
		query string
		want  domain.ListParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  domain.ListParams{Page: 1, PageSize: 50, SortBy: "gametitle", SortOrder: domain.SortAsc},
		},
		{
			name:  "filters and flags",
			query: "q=earth&page=2&platform=4&has_hacks=true&has_translations=false",
			want: domain.ListParams{Query: "earth", Page: 2, PageSize: 50, SortBy: "gametitle", SortOrder: domain.SortAsc}.
				WithFilter(domain.FacetPlatform, 4).
				WithFlag(domain.FacetHasHacks, true),
		},
		{
			name:  "bad page and unknown sort fall back",
			query: "page=-4&sort_by=rating&sort_order=sideways",
			want:  domain.ListParams{Page: 1, PageSize: 50, SortBy: "gametitle", SortOrder: domain.SortAsc},
		},
		{
			name:  "known sort",
			query: "sort_by=gamekey&sort_order=desc",
			want:  domain.ListParams{Page: 1, PageSize: 50, SortBy: "gamekey", SortOrder: domain.SortDesc},
		},
		{
			name:  "non-positive filter ignored",
			query: "genre=0&platform=-2",
			want:  domain.ListParams{Page: 1, PageSize: 50, SortBy: "gametitle", SortOrder: domain.SortAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := querystate.ParseLocation("/games?" + tt.query)
			state := querystate.Resolve(loc.Query, spec.Defaults())
			assert.Equal(t, tt.want.Values().Encode(), spec.Params(state).Values().Encode())
		})
	}
}

func TestListSpec_EveryKindHasDefaults(t *testing.T) {
	for _, kind := range dashboardKinds {
		spec, ok := SpecFor(kind)
		require.True(t, ok, kind)
		assert.True(t, spec.hasSort(spec.SortBy), "%s default sort is not offered", kind)
		assert.NotEmpty(t, spec.Columns, kind)
		assert.NotNil(t, spec.fetch, kind)
	}
}

// loadedGames returns a games page with its first fetch applied
func loadedGames(t *testing.T, raw string) (*ListPage, *archiveStub) {
	t.Helper()
	env, stub := newTestEnv(t)
	p := NewListPage(env, gameSpec(t), querystate.ParseLocation(raw))
	p.SetSize(100, 30)

	for _, msg := range drain(t, p.Init()) {
		p.Update(msg)
	}
	require.True(t, p.result.OK(), "list did not load: %v", p.result.Err)
	return p, stub
}

// navigation returns the single location cmd navigates to
func navigation(t *testing.T, cmd tea.Cmd) querystate.Location {
	t.Helper()
	navs := only[NavigateMsg](drain(t, cmd))
	require.Len(t, navs, 1)
	return navs[0].Location
}

func TestListPage_LoadsRows(t *testing.T) {
	p, stub := loadedGames(t, "/games")

	assert.Len(t, p.table.Rows(), 2)
	assert.Equal(t, "/games/7", p.table.Rows()[0].Route)
	assert.Equal(t, 3, p.totalPages())
	assert.Equal(t, 1, stub.count("/api/v1/games"))
	assert.NotNil(t, p.metadata)
}

func TestListPage_SettledSearchNavigatesOnce(t *testing.T) {
	p, _ := loadedGames(t, "/games?page=3&platform=4")

	p.Update(runes("/"))
	require.True(t, p.Capturing())

	var ticks []tea.Cmd
	for _, r := range "zelda" {
		cmd := p.Update(runes(string(r)))
		require.NotNil(t, cmd)
		ticks = append(ticks, cmd)
	}

	var navs []NavigateMsg
	for _, tick := range ticks {
		for _, msg := range only[debounce.SettledMsg[string]](drain(t, tick)) {
			navs = append(navs, only[NavigateMsg](drain(t, p.Update(msg)))...)
		}
	}

	require.Len(t, navs, 1, "only the trailing keystroke navigates")
	assert.Equal(t, "/games?platform=4&q=zelda", navs[0].Location.String())
}

func TestListPage_EnterAppliesSearchImmediately(t *testing.T) {
	p, _ := loadedGames(t, "/games?page=2")

	p.Update(runes("/"))
	p.Update(runes("m"))
	p.Update(runes("o"))

	loc := navigation(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "/games?q=mo", loc.String())
	assert.False(t, p.Capturing())
}

func TestListPage_EscapeRestoresQuery(t *testing.T) {
	p, _ := loadedGames(t, "/games?q=earth")

	p.Update(runes("/"))
	p.Update(runes("x"))
	assert.Nil(t, p.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, "earth", p.search.Value())
}

func TestListPage_FlagFacetResetsPage(t *testing.T) {
	p, _ := loadedGames(t, "/games?page=3")

	// facets 1-4: platform, genre, has hacks, has translations
	loc := navigation(t, p.Update(runes("3")))
	assert.Equal(t, "/games?has_hacks=true", loc.String())
}

func TestListPage_LookupFacetOpensPicker(t *testing.T) {
	p, _ := loadedGames(t, "/games?page=2")

	assert.Nil(t, p.Update(runes("1")))
	require.True(t, p.facetPicker.IsVisible())
	assert.True(t, p.Capturing())

	// the only console is Super Nintendo
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	loc := navigation(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "/games?platform=4", loc.String())
}

func TestListPage_OrderToggleResetsPage(t *testing.T) {
	p, _ := loadedGames(t, "/games?page=2")

	loc := navigation(t, p.Update(runes("o")))
	assert.Equal(t, "/games?sort_order=desc", loc.String())
}

func TestListPage_Paging(t *testing.T) {
	p, _ := loadedGames(t, "/games?q=earth")

	// already on page 1
	assert.Nil(t, p.Update(runes("[")))

	loc := navigation(t, p.Update(runes("]")))
	assert.Equal(t, "/games?page=2&q=earth", loc.String())

	// the binder moved with the navigation, so back goes to page 1
	loc = navigation(t, p.Update(runes("[")))
	assert.Equal(t, "/games?q=earth", loc.String())
}

func TestListPage_ClearFilters(t *testing.T) {
	p, _ := loadedGames(t, "/games?q=earth&platform=4&has_hacks=true&page=2&sort_order=desc")

	loc := navigation(t, p.Update(runes("x")))
	assert.Equal(t, "/games?sort_order=desc", loc.String())

	// nothing left to clear
	p2, _ := loadedGames(t, "/games?page=2")
	assert.Nil(t, p2.Update(runes("x")))
}

func TestListPage_DropsStaleResults(t *testing.T) {
	p, _ := loadedGames(t, "/games")

	stale := cache.Result[rowPage]{
		Status: cache.StatusSuccess,
		Data:   rowPage{Rows: []components.Row{{ID: 99, Route: "/games/99"}}},
	}
	p.Update(ListLoadedMsg{Key: "games?q=old", Result: stale})

	assert.Len(t, p.table.Rows(), 2)
	assert.Equal(t, 120, p.result.Data.Total)
}

func TestListPage_RelocateRefetches(t *testing.T) {
	p, stub := loadedGames(t, "/games")

	for _, msg := range drain(t, p.Relocate(querystate.ParseLocation("/games?page=2"))) {
		p.Update(msg)
	}
	assert.Equal(t, 2, p.page())
	assert.Equal(t, 2, stub.count("/api/v1/games"))

	// the first page is served from cache
	for _, msg := range drain(t, p.Relocate(querystate.ParseLocation("/games"))) {
		p.Update(msg)
	}
	assert.Equal(t, 2, stub.count("/api/v1/games"))
}

func TestListPage_ViewShowsChips(t *testing.T) {
	p, _ := loadedGames(t, "/games?platform=4&has_hacks=true")

	out := p.View(viewContext{Theme: styles.New(styles.ThemeDark), Width: 100, Height: 30})
	assert.Contains(t, out, "Super Nintendo")
	assert.Contains(t, out, "Has hacks")
	assert.Contains(t, out, "120 results")
}
