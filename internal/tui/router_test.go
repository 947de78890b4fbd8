package tui

import (
	"fmt"
	"testing"

	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Kind: RouteDashboard}},
		{"", Route{Kind: RouteDashboard}},
		{"/games", Route{Kind: RouteList, Resource: domain.KindGame}},
		{"/hacks?game=7&page=2", Route{Kind: RouteList, Resource: domain.KindHack}},
		{"/homebrew/", Route{Kind: RouteList, Resource: domain.KindHomebrew}},
		{"/translations/12", Route{Kind: RouteDetail, Resource: domain.KindTranslation, ID: 12}},
		{"/games/abc", Route{Kind: RouteDetail, Resource: domain.KindGame}},
		{"/games/-3", Route{Kind: RouteDetail, Resource: domain.KindGame}},
		{"/settings", Route{Kind: RouteNotFound}},
		{"/games/7/hacks", Route{Kind: RouteNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchRoute(querystate.ParseLocation(tt.path)))
		})
	}
}

func TestHistory_PushPop(t *testing.T) {
	h := NewHistory()
	assert.False(t, h.CanGoBack())

	h.Push(querystate.ParseLocation("/games?page=2"), 4)
	h.Push(querystate.ParseLocation("/games/7"), 0)
	require.Equal(t, 2, h.Len())

	loc, cursor, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "/games/7", loc.String())
	assert.Equal(t, 0, cursor)

	loc, cursor, ok = h.Pop()
	require.True(t, ok)
	assert.Equal(t, "/games?page=2", loc.String())
	assert.Equal(t, 4, cursor)

	_, _, ok = h.Pop()
	assert.False(t, ok)
}

func TestHistory_DropsOldestWhenFull(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= maxHistory+5; i++ {
		h.Push(querystate.ParseLocation(fmt.Sprintf("/games/%d", i)), i)
	}
	require.Equal(t, maxHistory, h.Len())

	var last querystate.Location
	for h.CanGoBack() {
		last, _, _ = h.Pop()
	}
	assert.Equal(t, "/games/6", last.String())
}
