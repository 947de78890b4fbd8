package components_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/debounce"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/mmcdole/romshelf/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstMsg runs cmd, expanding batches, and returns the first message of
// type T produced within timeout
func firstMsg[T tea.Msg](t *testing.T, cmd tea.Cmd, timeout time.Duration) (T, bool) {
	t.Helper()

	out := make(chan tea.Msg, 16)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			select {
			case out <- msg:
			default:
			}
		}()
	}
	run(cmd)

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-out:
			if typed, ok := msg.(T); ok {
				return typed, true
			}
		case <-deadline:
			var zero T
			return zero, false
		}
	}
}

func earthResult() search.Result {
	res := search.Result{Query: "earth"}
	res.Set(search.SlotResult{Slot: search.SlotGames, Status: cache.StatusLoading})
	res.Set(search.SlotResult{Slot: search.SlotHacks, Status: cache.StatusLoading})
	res.Set(search.SlotResult{Slot: search.SlotTranslations, Status: cache.StatusLoading})
	return res
}

func gameSlot() search.SlotResult {
	return search.SlotResult{
		Slot:   search.SlotGames,
		Status: cache.StatusSuccess,
		Total:  2,
		Items: []search.Suggestion{
			{Kind: domain.KindGame, ID: 1, Title: "EarthBound", Route: "/games/1", MatchedIndexes: []int{0, 1, 2, 3, 4}},
			{Kind: domain.KindGame, ID: 2, Title: "EarthBound Zero", Route: "/games/2"},
		},
	}
}

func TestPalette_SettledInputEmitsQuery(t *testing.T) {
	p := components.NewPalette(time.Millisecond, 2)
	p.Show()
	p.SetSize(100, 40)

	p.Update(runes("ea"))
	cmd := p.Update(runes("rth"))
	settled, ok := firstMsg[debounce.SettledMsg[string]](t, cmd, time.Second)
	require.True(t, ok)

	next := p.Update(settled)
	require.NotNil(t, next)
	query, ok := next().(components.PaletteQueryMsg)
	require.True(t, ok)
	assert.Equal(t, "earth", query.Query)

	assert.Nil(t, p.Update(settled), "a settled value is delivered once")
}

func TestPalette_StaleGenerationIgnored(t *testing.T) {
	p := components.NewPalette(time.Millisecond, 2)
	p.Show()

	old := p.Begin(earthResult())
	current := p.Begin(earthResult())

	assert.False(t, p.SetSlot(old, gameSlot()))
	assert.Empty(t, p.Result().Suggestions())

	assert.True(t, p.SetSlot(current, gameSlot()))
	assert.Len(t, p.Result().Suggestions(), 2)
	assert.True(t, p.Result().Loading(), "hacks and translations still pending")
}

func TestPalette_HideDropsLateAnswers(t *testing.T) {
	p := components.NewPalette(time.Millisecond, 2)
	p.Show()
	gen := p.Begin(earthResult())

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.IsVisible())
	assert.False(t, p.SetSlot(gen, gameSlot()))
}

func TestPalette_EnterSelectsAndClears(t *testing.T) {
	p := components.NewPalette(time.Millisecond, 2)
	p.Show()
	p.Update(runes("earth"))
	gen := p.Begin(earthResult())
	p.SetSlot(gen, gameSlot())

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(components.PaletteSelectMsg)
	require.True(t, ok)
	assert.Equal(t, "/games/2", msg.Suggestion.Route)
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.Query())
}

func TestPalette_View(t *testing.T) {
	th := styles.New(styles.ThemeDark)
	p := components.NewPalette(time.Millisecond, 2)
	p.SetSize(100, 40)
	assert.Empty(t, p.View(th))

	p.Show()
	p.Update(runes("e"))
	p.Begin(search.Result{Query: "e", NeedMoreInput: true})
	assert.Contains(t, p.View(th), "Type at least 2 characters")

	p.Update(runes("arth"))
	gen := p.Begin(earthResult())
	p.SetSlot(gen, gameSlot())
	p.SetSlot(gen, search.SlotResult{Slot: search.SlotHacks, Status: cache.StatusError, Err: domain.ErrServerUnavailable})
	view := p.View(th)
	assert.Contains(t, view, "Games")
	assert.Contains(t, view, "Search failed")
	assert.Contains(t, view, "searching...")
}
