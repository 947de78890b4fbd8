package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// Layout constants for tables
const (
	// Header line plus the "↑ more" and "↓ more" indicators
	TableChromeLines = 3

	columnGap = 2
)

// Column describes one table column. A zero Width takes the remaining space.
type Column struct {
	Title string
	Width int
}

// Row is one table row; Cells line up with the table's columns and the
// first cell is the row title used by the filter.
type Row struct {
	ID    int
	Route string
	Cells []string
}

// Title returns the first cell
func (r Row) Title() string {
	if len(r.Cells) == 0 {
		return ""
	}
	return r.Cells[0]
}

// Table is a scrollable, filterable list of rows
type Table struct {
	columns []Column
	rows    []Row

	// Selection
	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	// In-page filter over the loaded rows
	filterActive bool
	filterInput  textinput.Model
	filtered     []search.Match
}

// NewTable creates an empty table
func NewTable(columns []Column) *Table {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "

	return &Table{
		columns:     columns,
		filterInput: ti,
		focused:     true,
	}
}

// SetRows replaces the rows and clears any filter
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	t.clearFilter()
	if t.cursor >= len(rows) {
		t.cursor = max(len(rows)-1, 0)
	}
	t.ensureVisible()
}

// Rows returns the unfiltered rows
func (t *Table) Rows() []Row {
	return t.rows
}

// SetSize updates the table dimensions
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.recalcMaxVisible()
	t.ensureVisible()
}

// SetFocused sets the focus state
func (t *Table) SetFocused(focused bool) {
	t.focused = focused
}

// Cursor returns the selected position among the visible rows
func (t *Table) Cursor() int {
	return t.cursor
}

// SetCursor moves the selection, clamped to the rows
func (t *Table) SetCursor(i int) {
	t.cursor = min(max(i, 0), max(t.count()-1, 0))
	t.ensureVisible()
}

// Selected returns the selected row
func (t *Table) Selected() (Row, bool) {
	if t.count() == 0 {
		return Row{}, false
	}
	return t.rows[t.mapIndex(t.cursor)], true
}

// IsFilterTyping reports whether the filter input has focus
func (t *Table) IsFilterTyping() bool {
	return t.filterActive && t.filterInput.Focused()
}

// IsFiltering reports whether a filter is applied
func (t *Table) IsFiltering() bool {
	return t.filterActive
}

// Update handles navigation and filter keys
func (t *Table) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	if t.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, TableKeys.Escape):
				t.clearFilter()
				return nil
			case key.Matches(msg, TableKeys.Enter):
				t.filterInput.Blur()
				return nil
			case msg.Type == tea.KeyBackspace && t.filterInput.Value() == "":
				t.clearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		t.filterInput, cmd = t.filterInput.Update(msg)
		t.applyFilter()
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(km, TableKeys.Filter):
		t.filterActive = true
		t.recalcMaxVisible()
		return t.filterInput.Focus()
	case t.filterActive && key.Matches(km, TableKeys.Escape):
		t.clearFilter()
		return nil
	}

	count := t.count()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(km, TableKeys.Down):
		if t.cursor < count-1 {
			t.cursor++
		}
	case key.Matches(km, TableKeys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(km, TableKeys.Home):
		t.cursor = 0
	case key.Matches(km, TableKeys.End):
		t.cursor = count - 1
	case key.Matches(km, TableKeys.HalfDown):
		t.cursor = min(t.cursor+t.maxVisible/2, count-1)
	case key.Matches(km, TableKeys.HalfUp):
		t.cursor = max(t.cursor-t.maxVisible/2, 0)
	}
	t.ensureVisible()
	return nil
}

// Consumes reports whether the table wants msg for itself, so page-level
// bindings should not see it
func (t *Table) Consumes(msg tea.KeyMsg) bool {
	if t.IsFilterTyping() {
		return true
	}
	return t.filterActive && key.Matches(msg, TableKeys.Escape)
}

func (t *Table) count() int {
	if t.filtered != nil {
		return len(t.filtered)
	}
	return len(t.rows)
}

func (t *Table) mapIndex(i int) int {
	if t.filtered != nil && i < len(t.filtered) {
		return t.filtered[i].Index
	}
	return i
}

func (t *Table) recalcMaxVisible() {
	t.maxVisible = t.height - TableChromeLines
	if t.filterActive {
		t.maxVisible--
	}
	if t.maxVisible < 1 {
		t.maxVisible = 1
	}
}

func (t *Table) ensureVisible() {
	if t.maxVisible <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.maxVisible {
		t.offset = t.cursor - t.maxVisible + 1
	}
}

func (t *Table) clearFilter() {
	t.filterActive = false
	t.filtered = nil
	t.filterInput.SetValue("")
	t.filterInput.Blur()
	t.recalcMaxVisible()
}

func (t *Table) applyFilter() {
	query := t.filterInput.Value()
	if strings.TrimSpace(query) == "" {
		t.filtered = nil
		return
	}

	titles := make([]string, len(t.rows))
	for i, r := range t.rows {
		titles[i] = r.Title()
	}
	t.filtered = search.Filter(query, titles)
	if t.filtered == nil {
		t.filtered = []search.Match{}
	}

	t.cursor = 0
	t.offset = 0
}

// widths resolves flexible columns against the available width
func (t *Table) widths(total int) []int {
	out := make([]int, len(t.columns))
	fixed, flex := 0, 0
	for i, c := range t.columns {
		out[i] = c.Width
		if c.Width == 0 {
			flex++
		}
		fixed += c.Width
	}
	fixed += columnGap * max(len(t.columns)-1, 0)

	if flex > 0 {
		each := max((total-fixed)/flex, 8)
		for i := range out {
			if out[i] == 0 {
				out[i] = each
			}
		}
	}
	return out
}

// View renders the table
func (t *Table) View(th styles.Theme) string {
	widths := t.widths(t.width - 2)
	gap := strings.Repeat(" ", columnGap)

	var header []string
	for i, c := range t.columns {
		header = append(header, styles.Pad(c.Title, widths[i]))
	}
	lines := []string{" " + th.Header.Render(strings.Join(header, gap))}

	count := t.count()
	if count == 0 {
		empty := "No items"
		if t.filterActive && t.filterInput.Value() != "" {
			empty = "No matches"
		}
		lines = append(lines, " ", " "+th.Dim.Render(empty))
		if t.filterActive {
			lines = append(lines, t.renderFilterBar(th))
		}
		return strings.Join(lines, "\n")
	}

	up := " "
	if t.offset > 0 {
		up = th.Dim.Render(" ↑ more")
	}
	lines = append(lines, up)

	end := min(t.offset+t.maxVisible, count)
	for i := t.offset; i < end; i++ {
		lines = append(lines, t.renderRow(th, i, widths, i == t.cursor && t.focused))
	}

	down := " "
	if end < count {
		down = th.Dim.Render(" ↓ more")
	}
	lines = append(lines, down)

	if t.filterActive {
		lines = append(lines, t.renderFilterBar(th))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) renderRow(th styles.Theme, i int, widths []int, selected bool) string {
	row := t.rows[t.mapIndex(i)]
	style := th.NormalItem
	if selected {
		style = th.SelectedItem
	}

	var matched []int
	if t.filtered != nil {
		matched = t.filtered[i].MatchedIndexes
	}

	var parts []string
	for c, w := range widths {
		cell := ""
		if c < len(row.Cells) {
			cell = row.Cells[c]
		}
		cell = styles.Pad(cell, w)
		if c == 0 && matched != nil {
			parts = append(parts, th.HighlightMatches(cell, matched, selected))
			continue
		}
		parts = append(parts, style.Render(cell))
	}
	return style.Render(" ") + strings.Join(parts, style.Render(strings.Repeat(" ", columnGap))) + style.Render(" ")
}

func (t *Table) renderFilterBar(th styles.Theme) string {
	in := t.filterInput
	in.PromptStyle = th.Accent.Bold(true)
	in.TextStyle = th.Accent
	in.PlaceholderStyle = th.Dim
	return " " + in.View()
}
