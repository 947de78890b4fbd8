package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameSorts = []components.SortOption{
	{Field: "gametitle", Label: "Title", Order: domain.SortAsc},
	{Field: "publisher", Label: "Publisher", Order: domain.SortAsc},
	{Field: "gamekey", Label: "Date Added", Order: domain.SortDesc},
}

func TestSortModal_ActiveFieldTogglesOrder(t *testing.T) {
	m := components.NewSortModal()
	m.Show(gameSorts, components.SortSelection{Field: "gametitle", Order: domain.SortAsc})

	handled, sel := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, components.SortSelection{Field: "gametitle", Order: domain.SortDesc}, *sel)
	assert.False(t, m.IsVisible())
}

func TestSortModal_NewFieldUsesItsOrder(t *testing.T) {
	m := components.NewSortModal()
	m.Show(gameSorts, components.SortSelection{Field: "gametitle", Order: domain.SortAsc})

	m.HandleKey(runes("j"))
	m.HandleKey(runes("j"))
	_, sel := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, sel)
	assert.Equal(t, components.SortSelection{Field: "gamekey", Order: domain.SortDesc}, *sel)
}

func TestSortModal_EscapeCancels(t *testing.T) {
	m := components.NewSortModal()
	m.Show(gameSorts, components.SortSelection{Field: "gametitle", Order: domain.SortAsc})

	handled, sel := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, m.IsVisible())

	handled, _ = m.HandleKey(runes("j"))
	assert.False(t, handled, "hidden modal ignores keys")
}

func TestFacetPicker(t *testing.T) {
	consoles := []domain.Option{{ID: 3, Label: "SNES"}, {ID: 5, Label: "NES"}}

	t.Run("any clears", func(t *testing.T) {
		p := components.NewFacetPicker()
		p.Show(domain.FacetPlatform, "Platform", consoles, 5)

		p.HandleKey(runes("g"))
		_, choice := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, choice)
		assert.Equal(t, components.FacetChoice{Key: domain.FacetPlatform, ID: 0}, *choice)
	})

	t.Run("cursor starts on current", func(t *testing.T) {
		p := components.NewFacetPicker()
		p.Show(domain.FacetPlatform, "Platform", consoles, 5)

		_, choice := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, choice)
		assert.Equal(t, 5, choice.ID)
	})

	t.Run("options arrive later", func(t *testing.T) {
		p := components.NewFacetPicker()
		p.Show(domain.FacetPlatform, "Platform", nil, 3)
		p.SetOptions(consoles)

		_, choice := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, choice)
		assert.Equal(t, 3, choice.ID)
	})
}

func TestPageModal(t *testing.T) {
	m := components.NewPageModal()
	m.Show(5)

	m.Update(runes("9"))
	_, page := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, page, "out of range page is rejected")
	assert.True(t, m.IsVisible())

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(runes("3"))
	_, page = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 3, page)
	assert.False(t, m.IsVisible())
}

func TestSectionForPath(t *testing.T) {
	assert.Equal(t, 0, components.SectionForPath("/"))
	assert.Equal(t, 1, components.SectionForPath("/games"))
	assert.Equal(t, 1, components.SectionForPath("/games/12"))
	assert.Equal(t, 3, components.SectionForPath("/translations/4"))
	assert.Equal(t, -1, components.SectionForPath("/gamesx"))
	assert.Equal(t, -1, components.SectionForPath("/nowhere"))
}
