package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// Border overhead for the sidebar panel
const BorderSize = 2

// Section is a top-level destination listed in the sidebar
type Section struct {
	Label string
	Path  string
}

// Sections lists the sidebar destinations in display order
var Sections = []Section{
	{Label: "Dashboard", Path: "/"},
	{Label: domain.KindGame.Label(), Path: "/" + string(domain.KindGame)},
	{Label: domain.KindHack.Label(), Path: "/" + string(domain.KindHack)},
	{Label: domain.KindTranslation.Label(), Path: "/" + string(domain.KindTranslation)},
	{Label: domain.KindUtility.Label(), Path: "/" + string(domain.KindUtility)},
	{Label: domain.KindDocument.Label(), Path: "/" + string(domain.KindDocument)},
	{Label: domain.KindHomebrew.Label(), Path: "/" + string(domain.KindHomebrew)},
}

// sectionItem implements list.Item for sections
type sectionItem struct {
	section Section
	active  bool
}

func (i sectionItem) FilterValue() string { return i.section.Label }

func (i sectionItem) Title() string {
	if i.active {
		return "● " + i.section.Label
	}
	return "  " + i.section.Label
}

func (i sectionItem) Description() string { return i.section.Path }

// SectionForPath returns the index of the section a route belongs to, or
// -1 when none does
func SectionForPath(path string) int {
	if path == "/" || path == "" {
		return 0
	}
	for i, s := range Sections[1:] {
		if path == s.Path || len(path) > len(s.Path) && path[:len(s.Path)+1] == s.Path+"/" {
			return i + 1
		}
	}
	return -1
}

// Sidebar is the section navigation panel
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int
	active  int
	status  string
}

// NewSidebar creates a new sidebar component
func NewSidebar() *Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "romshelf"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)

	s := &Sidebar{list: l}
	s.refreshItems()
	return s
}

func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(Sections))
	for i, sec := range Sections {
		items[i] = sectionItem{section: sec, active: i == s.active}
	}
	s.list.SetItems(items)
}

// SetActivePath marks the section owning path
func (s *Sidebar) SetActivePath(path string) {
	idx := SectionForPath(path)
	if idx == s.active {
		return
	}
	s.active = idx
	s.refreshItems()
	if idx >= 0 && !s.focused {
		s.list.Select(idx)
	}
}

// SetStatus sets the line rendered under the sections, typically the
// archive health
func (s *Sidebar) SetStatus(status string) {
	s.status = status
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderSize, height-BorderSize-2)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SelectedIndex returns the selected index
func (s *Sidebar) SelectedIndex() int {
	return s.list.Index()
}

// Update moves the selection; Enter returns the chosen section
func (s *Sidebar) Update(msg tea.Msg) (*Section, tea.Cmd) {
	if !s.focused {
		return nil, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(keyMsg, TableKeys.Down):
		s.list.CursorDown()
	case key.Matches(keyMsg, TableKeys.Up):
		s.list.CursorUp()
	case key.Matches(keyMsg, TableKeys.Home):
		s.list.Select(0)
	case key.Matches(keyMsg, TableKeys.End):
		s.list.Select(len(Sections) - 1)
	case key.Matches(keyMsg, TableKeys.Enter):
		sec := Sections[s.list.Index()]
		return &sec, nil
	}
	return nil, nil
}

// View renders the component
func (s *Sidebar) View(th styles.Theme) string {
	style := th.InactiveBorder
	if s.focused {
		style = th.ActiveBorder
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = th.SelectedItem.Padding(0, 1)
	delegate.Styles.NormalTitle = th.NormalItem.Padding(0, 1)
	if !s.focused {
		delegate.Styles.SelectedTitle = th.NormalItem.Padding(0, 1)
	}

	l := s.list
	l.SetDelegate(delegate)
	l.Styles.Title = th.Header.Padding(0, 1)

	// Subtract frame (border) size so total rendered size equals s.width x s.height
	frameW, frameH := style.GetFrameSize()

	body := l.View()
	if s.status != "" {
		body += "\n\n " + s.status
	}

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(body)
}
