package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

const facetPickerRows = 12

// FacetChoice is the value picked for a facet; ID 0 clears it
type FacetChoice struct {
	Key string
	ID  int
}

// FacetPicker lists the options of one categorical facet with "Any" on top
type FacetPicker struct {
	visible bool
	key     string
	title   string
	options []domain.Option // options[0] is "Any"
	current int
	cursor  int
	offset  int
	loading bool
}

// NewFacetPicker creates a hidden picker
func NewFacetPicker() *FacetPicker {
	return &FacetPicker{}
}

// Show opens the picker for facet key. options may be nil while lookups
// are still loading.
func (p *FacetPicker) Show(facetKey, title string, options []domain.Option, current int) {
	p.visible = true
	p.key = facetKey
	p.title = title
	p.current = current
	p.SetOptions(options)
}

// SetOptions replaces the listed options, keeping the cursor on the
// current value
func (p *FacetPicker) SetOptions(options []domain.Option) {
	p.loading = options == nil
	p.options = append([]domain.Option{{ID: 0, Label: "Any"}}, options...)
	p.cursor = 0
	p.offset = 0
	for i, opt := range p.options {
		if opt.ID == p.current {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

// Key returns the facet being picked
func (p *FacetPicker) Key() string {
	return p.key
}

// Hide dismisses the picker
func (p *FacetPicker) Hide() {
	p.visible = false
}

// IsVisible returns whether the picker is shown
func (p *FacetPicker) IsVisible() bool {
	return p.visible
}

// HandleKey processes a key press, returns (handled, choice)
func (p *FacetPicker) HandleKey(msg tea.KeyMsg) (bool, *FacetChoice) {
	if !p.visible {
		return false, nil
	}

	switch {
	case key.Matches(msg, PickerKeys.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(msg, PickerKeys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, TableKeys.Home):
		p.cursor = 0
	case key.Matches(msg, TableKeys.End):
		p.cursor = len(p.options) - 1
	case key.Matches(msg, PickerKeys.Enter):
		p.visible = false
		return true, &FacetChoice{Key: p.key, ID: p.options[p.cursor].ID}
	case key.Matches(msg, PickerKeys.Escape):
		p.visible = false
	}
	p.ensureVisible()
	return true, nil
}

func (p *FacetPicker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+facetPickerRows {
		p.offset = p.cursor - facetPickerRows + 1
	}
}

// View renders the picker
func (p *FacetPicker) View(th styles.Theme) string {
	if !p.visible {
		return ""
	}

	var lines []string
	if p.offset > 0 {
		lines = append(lines, th.Dim.Render("  ↑ more"))
	}
	end := min(p.offset+facetPickerRows, len(p.options))
	for i := p.offset; i < end; i++ {
		opt := p.options[i]
		prefix := "  "
		if opt.ID == p.current {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, 28)

		switch {
		case i == p.cursor:
			lines = append(lines, th.SelectedItem.Render(text))
		case opt.ID == p.current:
			lines = append(lines, th.Accent.Render(text))
		default:
			lines = append(lines, th.NormalItem.Render(text))
		}
	}
	if end < len(p.options) {
		lines = append(lines, th.Dim.Render("  ↓ "+strconv.Itoa(len(p.options)-end)+" more"))
	}
	if p.loading {
		lines = append(lines, th.Dim.Render("  loading options..."))
	}

	return th.Modal.Padding(0, 1).Render(th.ModalTitle.Render(p.title) + "\n" + strings.Join(lines, "\n"))
}
