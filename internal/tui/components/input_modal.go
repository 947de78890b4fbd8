package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// PageModal asks for a page number to jump to
type PageModal struct {
	visible bool
	total   int
	input   textinput.Model
	invalid bool
}

// NewPageModal creates a new page modal
func NewPageModal() *PageModal {
	ti := textinput.New()
	ti.Placeholder = "page"
	ti.CharLimit = 6
	ti.Width = 8
	ti.Prompt = ""
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return strconv.ErrSyntax
			}
		}
		return nil
	}

	return &PageModal{input: ti}
}

// Show displays the modal for a list with total pages
func (m *PageModal) Show(total int) tea.Cmd {
	m.visible = true
	m.total = total
	m.invalid = false
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *PageModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m *PageModal) IsVisible() bool {
	return m.visible
}

// Update handles input events, returns (cmd, page). page is 0 until a valid
// number within range is submitted.
func (m *PageModal) Update(msg tea.Msg) (tea.Cmd, int) {
	if !m.visible {
		return nil, 0
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil || n < 1 || n > m.total {
				m.invalid = true
				return nil, 0
			}
			m.Hide()
			return nil, n
		case tea.KeyEsc:
			m.Hide()
			return nil, 0
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.invalid = false
	return cmd, 0
}

// View renders the page modal
func (m *PageModal) View(th styles.Theme) string {
	if !m.visible {
		return ""
	}

	const modalWidth = 30

	in := m.input
	in.TextStyle = lipgloss.NewStyle().Foreground(th.Palette.Strong)
	in.PlaceholderStyle = th.Dim

	hint := th.Dim.Render("1 to " + strconv.Itoa(m.total))
	if m.invalid {
		hint = th.Error.Render("enter a page from 1 to " + strconv.Itoa(m.total))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		th.ModalTitle.Width(modalWidth).Render("Go to page"),
		in.View(),
		"",
		hint,
	)
	return th.Modal.Render(content)
}
