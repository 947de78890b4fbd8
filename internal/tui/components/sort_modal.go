package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// SortOption is a field a list can be sorted by
type SortOption struct {
	Field string // Backend column name sent as sort_by
	Label string
	Order string // Order applied when the field is first chosen
}

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field string
	Order string
}

// Toggled returns the selection with the opposite order
func (s SortSelection) Toggled() SortSelection {
	if s.Order == domain.SortDesc {
		s.Order = domain.SortAsc
	} else {
		s.Order = domain.SortDesc
	}
	return s
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible bool
	options []SortOption
	cursor  int
	active  SortSelection
}

// NewSortModal creates a new sort modal
func NewSortModal() *SortModal {
	return &SortModal{}
}

// Show displays the modal with the given options and current sort state
func (m *SortModal) Show(options []SortOption, active SortSelection) {
	m.visible = true
	m.options = options
	m.active = active
	m.cursor = 0
	for i, opt := range options {
		if opt.Field == active.Field {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m *SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice. Choosing the active
// field again flips its order.
func (m *SortModal) HandleKey(msg tea.KeyMsg) (bool, *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch {
	case key.Matches(msg, PickerKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, PickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, PickerKeys.Enter):
		if len(m.options) == 0 {
			m.visible = false
			return true, nil
		}
		chosen := m.options[m.cursor]
		sel := SortSelection{Field: chosen.Field, Order: chosen.Order}
		if chosen.Field == m.active.Field {
			sel = m.active.Toggled()
		}
		m.visible = false
		return true, &sel
	case key.Matches(msg, PickerKeys.Escape), msg.String() == "s":
		m.visible = false
	}

	// Consume all keys when visible
	return true, nil
}

// View renders the sort modal
func (m *SortModal) View(th styles.Theme) string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		isActive := opt.Field == m.active.Field

		prefix := "  "
		suffix := ""
		if isActive {
			prefix = "✓ "
			suffix = " ↑"
			if m.active.Order == domain.SortDesc {
				suffix = " ↓"
			}
		}
		text := styles.Pad(prefix+opt.Label+suffix, 20)

		switch {
		case i == m.cursor:
			lines = append(lines, th.SelectedItem.Render(text))
		case isActive:
			lines = append(lines, th.Accent.Render(text))
		default:
			lines = append(lines, th.NormalItem.Render(text))
		}
	}

	return th.Modal.Padding(0, 1).Render(th.ModalTitle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
