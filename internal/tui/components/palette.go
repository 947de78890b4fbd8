package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/debounce"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// PaletteQueryMsg is emitted when the palette input has settled on a query
type PaletteQueryMsg struct {
	Query string
}

// PaletteSelectMsg is emitted when a suggestion is chosen
type PaletteSelectMsg struct {
	Suggestion search.Suggestion
}

// Palette is the command palette modal: a debounced search box over
// games, hacks and translations with results grouped by kind
type Palette struct {
	input    textinput.Model
	debounce debounce.Debouncer[string]
	minRunes int

	result search.Result
	gen    int // Bumped per query; slot answers for older generations are dropped
	cursor int

	visible bool
	width   int
	height  int
	spinner string
}

// NewPalette creates a hidden palette
func NewPalette(delay time.Duration, minRunes int) *Palette {
	ti := textinput.New()
	ti.Placeholder = "Search games, hacks, translations..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "> "

	if minRunes < 1 {
		minRunes = search.DefaultMinRunes
	}

	return &Palette{
		input:    ti,
		debounce: debounce.New[string](delay),
		minRunes: minRunes,
	}
}

// Show makes the palette visible with an empty input
func (p *Palette) Show() tea.Cmd {
	p.visible = true
	p.reset()
	return p.input.Focus()
}

// Hide hides the palette and clears its input. Slot commands already in
// flight keep running; their answers are dropped by generation.
func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
	p.reset()
}

// Toggle shows or hides the palette
func (p *Palette) Toggle() tea.Cmd {
	if p.visible {
		p.Hide()
		return nil
	}
	return p.Show()
}

func (p *Palette) reset() {
	p.debounce.Stop()
	p.input.SetValue("")
	p.result = search.Result{}
	p.cursor = 0
	p.gen++
}

// IsVisible reports whether the palette is shown
func (p *Palette) IsVisible() bool {
	return p.visible
}

// SetSize updates the area the modal is centered in
func (p *Palette) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = min(max(width*2/3, 40), 80) - 10
}

// SetSpinner sets the frame shown next to loading groups
func (p *Palette) SetSpinner(frame string) {
	p.spinner = frame
}

// Query returns the current input
func (p *Palette) Query() string {
	return p.input.Value()
}

// Result returns the grouped result being displayed
func (p *Palette) Result() search.Result {
	return p.result
}

// Begin starts displaying res and returns the generation that slot answers
// for it must carry
func (p *Palette) Begin(res search.Result) int {
	p.gen++
	p.result = res
	p.cursor = 0
	return p.gen
}

// SetSlot stores one group's answer. Answers for a superseded generation
// are ignored and SetSlot returns false.
func (p *Palette) SetSlot(gen int, r search.SlotResult) bool {
	if gen != p.gen || !p.visible {
		return false
	}
	p.result.Set(r)
	p.cursor = min(p.cursor, max(len(p.result.Suggestions())-1, 0))
	return true
}

// Selected returns the suggestion under the cursor
func (p *Palette) Selected() (search.Suggestion, bool) {
	items := p.result.Suggestions()
	if p.cursor >= len(items) {
		return search.Suggestion{}, false
	}
	return items[p.cursor], true
}

// Update handles keys and debounce ticks while visible
func (p *Palette) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}

	switch msg := msg.(type) {
	case debounce.SettledMsg[string]:
		q, ok := p.debounce.Settle(msg)
		if !ok {
			return nil
		}
		return func() tea.Msg { return PaletteQueryMsg{Query: q} }

	case tea.KeyMsg:
		count := len(p.result.Suggestions())
		switch {
		case key.Matches(msg, PaletteKeys.Escape):
			p.Hide()
			return nil

		case key.Matches(msg, PaletteKeys.Enter):
			s, ok := p.Selected()
			if !ok {
				return nil
			}
			p.Hide()
			return func() tea.Msg { return PaletteSelectMsg{Suggestion: s} }

		case key.Matches(msg, PaletteKeys.Down):
			if p.cursor < count-1 {
				p.cursor++
			}
			return nil

		case key.Matches(msg, PaletteKeys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return nil
		}

		before := p.input.Value()
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		if p.input.Value() != before {
			return tea.Batch(cmd, p.debounce.Trigger(p.input.Value()))
		}
		return cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the modal centered in the palette's area
func (p *Palette) View(th styles.Theme) string {
	if !p.visible {
		return ""
	}

	modalWidth := min(max(p.width*2/3, 40), 80)

	in := p.input
	in.PromptStyle = th.Accent.Bold(true)
	in.TextStyle = lipgloss.NewStyle().Foreground(th.Palette.Strong)
	in.PlaceholderStyle = th.Dim

	var b strings.Builder
	b.WriteString(th.ModalTitle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(in.View())
	b.WriteString("\n\n")
	p.renderResults(&b, th, modalWidth)
	b.WriteString("\n\n")
	b.WriteString(th.Dim.Render("↑/↓ move · enter open · esc close"))

	content := lipgloss.NewStyle().Width(modalWidth - 4).Render(b.String())
	modal := th.Modal.Width(modalWidth).Render(content)

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, modal)
}

func (p *Palette) renderResults(b *strings.Builder, th styles.Theme, modalWidth int) {
	res := p.result
	if strings.TrimSpace(p.input.Value()) == "" {
		b.WriteString(th.Dim.Render("Start typing to search the archive"))
		return
	}
	if res.NeedMoreInput {
		b.WriteString(th.Dim.Render(fmt.Sprintf("Type at least %d characters", p.minRunes)))
		return
	}
	if res.Query == "" {
		// Still settling
		b.WriteString(th.Dim.Render("…"))
		return
	}
	if res.Empty() {
		b.WriteString(th.Dim.Render(fmt.Sprintf("No results for %q", res.Query)))
		return
	}

	titleWidth := modalWidth - 12
	index := 0
	for i, slot := range res.Slots {
		if i > 0 {
			b.WriteString("\n")
		}

		header := slot.Slot.Label()
		if slot.Total > len(slot.Items) {
			header += th.Dim.Render(fmt.Sprintf("  %d of %d", len(slot.Items), slot.Total))
		}
		b.WriteString(th.Header.Render(header))
		b.WriteString("\n")

		switch {
		case slot.Status == cache.StatusLoading:
			b.WriteString("  " + th.Spinner.Render(p.spinner) + th.Dim.Render(" searching..."))
			b.WriteString("\n")
			continue
		case slot.Status == cache.StatusError && len(slot.Items) == 0:
			b.WriteString("  " + th.Error.Render("Search failed"))
			b.WriteString("\n")
			continue
		case len(slot.Items) == 0:
			b.WriteString("  " + th.Dim.Render("No matches"))
			b.WriteString("\n")
			continue
		}

		for _, s := range slot.Items {
			selected := index == p.cursor
			title := styles.Truncate(s.Title, titleWidth)
			matched := s.MatchedIndexes
			if title != s.Title {
				matched = nil
			}

			line := "  " + th.HighlightMatches(title, matched, selected)
			if s.Subtitle != "" {
				line += " " + th.Dim.Render(styles.Truncate(s.Subtitle, max(titleWidth-lipgloss.Width(title), 0)))
			}
			b.WriteString(line)
			b.WriteString("\n")
			index++
		}
	}
}
