package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/service"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// Game pages list their hacks and translations below the record
const (
	subListPageSize = 20

	paramHacksPage        = "hacks_page"
	paramTranslationsPage = "translations_page"
)

// subList is one paginated related-records section of a game page
type subList struct {
	kind   domain.Kind
	param  string
	table  *components.Table
	key    string
	result cache.Result[rowPage]
}

// DetailPage shows one record. Game records carry their hacks and
// translations as sub-lists whose pages live in the location.
type DetailPage struct {
	env    *Env
	kind   domain.Kind
	id     int
	binder *querystate.Binder

	pending tea.Cmd

	key    string
	result cache.Result[detailDoc]

	imagesKey string
	images    cache.Result[[]domain.Image]

	viewport viewport.Model
	subs     []*subList
	active   int

	pendingCursor int
	width, height int
}

// NewDetailPage creates the page for record id of kind. An id of 0 renders
// as not found without touching the archive.
func NewDetailPage(env *Env, kind domain.Kind, id int, loc querystate.Location) *DetailPage {
	vp := viewport.New(0, 0)
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown", " "))

	p := &DetailPage{
		env:           env,
		kind:          kind,
		id:            id,
		viewport:      vp,
		pendingCursor: -1,
	}

	defaults := querystate.Defaults{}
	if kind == domain.KindGame {
		p.subs = []*subList{
			{kind: domain.KindHack, param: paramHacksPage, table: components.NewTable(gameHackColumns)},
			{kind: domain.KindTranslation, param: paramTranslationsPage, table: components.NewTable(gameTranslationColumns)},
		}
		for _, s := range p.subs {
			defaults[s.param] = 1
		}
		p.subs[1].table.SetFocused(false)
	}
	p.binder = querystate.NewBinder(loc, defaults, func(next querystate.Location) {
		p.pending = navigateCmd(next)
	})
	return p
}

var gameHackColumns = []components.Column{
	{Title: "Title"},
	{Title: "Game", Width: 20},
	{Title: "Console", Width: 10},
	{Title: "Category", Width: 14},
	{Title: "Downloads", Width: 9},
}

var gameTranslationColumns = []components.Column{
	{Title: "Game title"},
	{Title: "Language", Width: 12},
	{Title: "Console", Width: 10},
	{Title: "Status", Width: 12},
	{Title: "Version", Width: 8},
}

func (p *DetailPage) Init() tea.Cmd {
	if p.id <= 0 {
		return nil
	}

	p.key = service.DetailKey(p.kind, p.id)
	p.result.Status = cache.StatusLoading
	cmds := []tea.Cmd{LoadDetailCmd(p.env, p.kind, p.id, p.key)}

	if p.kind == domain.KindHack || p.kind == domain.KindTranslation {
		p.imagesKey = service.SubKey(p.kind, p.id, "images", nil)
		p.images.Status = cache.StatusLoading
		cmds = append(cmds, LoadImagesCmd(p.env, p.kind, p.id, p.imagesKey))
	}

	for _, s := range p.subs {
		cmds = append(cmds, p.loadSub(s))
	}
	return tea.Batch(cmds...)
}

// Relocate follows a sub-list page change
func (p *DetailPage) Relocate(loc querystate.Location) tea.Cmd {
	p.binder = querystate.NewBinder(loc, p.binder.Defaults(), func(next querystate.Location) {
		p.pending = navigateCmd(next)
	})
	var cmds []tea.Cmd
	for _, s := range p.subs {
		if p.subKey(s) != s.key {
			cmds = append(cmds, p.loadSub(s))
		}
	}
	return tea.Batch(cmds...)
}

func (p *DetailPage) subPage(s *subList) int {
	return max(p.binder.State().Int(s.param), 1)
}

func (p *DetailPage) subKey(s *subList) string {
	return service.SubKey(domain.KindGame, p.id, string(s.kind), domain.PageParams(p.subPage(s), subListPageSize))
}

func (p *DetailPage) loadSub(s *subList) tea.Cmd {
	s.key = p.subKey(s)
	s.result.Status = cache.StatusLoading
	s.result.Err = nil
	page := p.subPage(s)
	if s.kind == domain.KindHack {
		return LoadGameHacksCmd(p.env, p.id, page, subListPageSize, s.key)
	}
	return LoadGameTranslationsCmd(p.env, p.id, page, subListPageSize, s.key)
}

func (p *DetailPage) takePending() tea.Cmd {
	cmd := p.pending
	p.pending = nil
	return cmd
}

func (p *DetailPage) doc() (detailDoc, bool) {
	if p.result.OK() || p.result.Stale {
		return p.result.Data, true
	}
	return detailDoc{}, false
}

func (p *DetailPage) notFound() bool {
	return p.id <= 0 || (p.result.Failed() && errors.Is(p.result.Err, domain.ErrNotFound))
}

func (p *DetailPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		if msg.Key != p.key {
			return nil
		}
		p.result = msg.Result
		p.refreshContent()
		return nil

	case ImagesLoadedMsg:
		if msg.Key != p.imagesKey {
			return nil
		}
		p.images = msg.Result
		p.refreshContent()
		return nil

	case SubListLoadedMsg:
		for i, s := range p.subs {
			if s.key != msg.Key {
				continue
			}
			s.result = msg.Result
			if msg.Result.OK() || msg.Result.Stale {
				s.table.SetRows(msg.Result.Data.Rows)
				if i == p.active && p.pendingCursor >= 0 {
					s.table.SetCursor(p.pendingCursor)
					p.pendingCursor = -1
				}
			}
		}
		return nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *DetailPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, Keys.Retry) && !p.Capturing() {
		return p.retry()
	}

	if len(p.subs) == 0 {
		if key.Matches(msg, Keys.OpenGame) {
			if doc, ok := p.doc(); ok && doc.GameID > 0 {
				return navigatePathCmd(domain.KindGame.DetailRoute(doc.GameID))
			}
			return nil
		}
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}

	s := p.subs[p.active]
	if s.table.Consumes(msg) {
		return s.table.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Left):
		p.focus(p.active - 1)
		return nil
	case key.Matches(msg, Keys.Right):
		p.focus(p.active + 1)
		return nil

	case key.Matches(msg, Keys.NextPage):
		if page := p.subPage(s); page < s.result.Data.TotalPages {
			p.binder.Update(map[string]any{s.param: page + 1})
			return p.takePending()
		}
		return nil
	case key.Matches(msg, Keys.PrevPage):
		if page := p.subPage(s); page > 1 {
			p.binder.Update(map[string]any{s.param: page - 1})
			return p.takePending()
		}
		return nil

	case key.Matches(msg, Keys.ViewAll):
		return navigatePathCmd(fmt.Sprintf("/%s?%s=%d", s.kind, domain.FacetGame, p.id))

	case key.Matches(msg, Keys.Enter):
		if row, ok := s.table.Selected(); ok {
			return navigatePathCmd(row.Route)
		}
		return nil
	}

	return s.table.Update(msg)
}

func (p *DetailPage) focus(i int) {
	if i < 0 || i >= len(p.subs) {
		return
	}
	p.active = i
	for j, s := range p.subs {
		s.table.SetFocused(j == i)
	}
}

// retry refetches whatever failed
func (p *DetailPage) retry() tea.Cmd {
	if p.id <= 0 {
		return nil
	}
	var cmds []tea.Cmd
	if p.result.Failed() {
		p.result.Status = cache.StatusLoading
		cmds = append(cmds, LoadDetailCmd(p.env, p.kind, p.id, p.key))
	}
	if p.images.Failed() {
		p.images.Status = cache.StatusLoading
		cmds = append(cmds, LoadImagesCmd(p.env, p.kind, p.id, p.imagesKey))
	}
	for _, s := range p.subs {
		if s.result.Failed() {
			cmds = append(cmds, p.loadSub(s))
		}
	}
	return tea.Batch(cmds...)
}

func (p *DetailPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.layout()
}

// headerLines is the title, subtitle and blank line above the body
const headerLines = 3

// layout sizes the scroll area or sub-list tables around the header
func (p *DetailPage) layout() {
	body := max(p.height-headerLines, 1)
	if len(p.subs) == 0 {
		p.viewport.Width = p.width
		p.viewport.Height = body
		return
	}

	// Fields, a blank line, the section tabs and the pagination bar
	used := 3
	if doc, ok := p.doc(); ok {
		used += len(doc.Fields)
	}
	for _, s := range p.subs {
		s.table.SetSize(p.width, max(body-used, 3))
	}
}

// refreshContent resizes the body once a record or its images arrive
func (p *DetailPage) refreshContent() {
	p.layout()
}

func (p *DetailPage) body(doc detailDoc, th styles.Theme) string {
	var b strings.Builder
	b.WriteString(renderFields(th, doc.Fields))

	if doc.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Description"))
		b.WriteString("\n")
		b.WriteString(wordWrap(doc.Description, max(p.width-2, 20)))
	}

	if p.imagesKey != "" {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Screenshots"))
		b.WriteString("\n")
		switch {
		case p.images.Status == cache.StatusLoading:
			b.WriteString(th.Dim.Render("loading..."))
		case p.images.Failed() && !p.images.Stale:
			b.WriteString(th.Error.Render("Could not load screenshots"))
		case len(p.images.Data) == 0:
			b.WriteString(th.Dim.Render("None"))
		default:
			for i, img := range p.images.Data {
				caption := img.Caption
				if caption == "" {
					caption = img.Filename
				}
				fmt.Fprintf(&b, "%s %s\n", th.Dim.Render(strconv.Itoa(i+1)+"."), caption)
			}
		}
	}

	if doc.GameID > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderHints(th, []hint{bindingHint(Keys.OpenGame)}))
	}
	return b.String()
}

// renderFields renders aligned "label  value" lines
func renderFields(th styles.Theme, fields []detailField) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, th.Dim.Render(styles.Pad(f.Label, width))+"  "+f.Value)
	}
	return strings.Join(lines, "\n")
}

func (p *DetailPage) Title() string {
	if doc, ok := p.doc(); ok {
		return doc.Title
	}
	return p.kind.Label()
}

func (p *DetailPage) Hints() []hint {
	var hints []hint
	if len(p.subs) > 0 {
		hints = append(hints,
			hint{Key: "h/l", Desc: "section"},
			bindingHint(Keys.Enter),
			hint{Key: "[ ]", Desc: "page"},
			bindingHint(Keys.ViewAll),
		)
	} else if doc, ok := p.doc(); ok && doc.GameID > 0 {
		hints = append(hints, bindingHint(Keys.OpenGame))
	}
	if p.result.Failed() {
		hints = append(hints, bindingHint(Keys.Retry))
	}
	return hints
}

func (p *DetailPage) Capturing() bool {
	for _, s := range p.subs {
		if s.table.IsFilterTyping() {
			return true
		}
	}
	return false
}

func (p *DetailPage) Cursor() int {
	if len(p.subs) == 0 {
		return p.viewport.YOffset
	}
	return p.subs[p.active].table.Cursor()
}

func (p *DetailPage) SetCursor(i int) {
	if len(p.subs) == 0 {
		p.viewport.SetYOffset(i)
		return
	}
	if p.subs[p.active].result.Status == cache.StatusLoading {
		p.pendingCursor = i
		return
	}
	p.subs[p.active].table.SetCursor(i)
}

func (p *DetailPage) View(vc viewContext) string {
	th := vc.Theme
	label := strings.ToLower(p.kind.Label())

	switch {
	case p.notFound():
		return renderEmpty(vc,
			fmt.Sprintf("No %s found at %s.", label, p.binder.Location().Path),
			bindingHint(Keys.Back), bindingHint(Keys.Home))
	case p.result.Failed() && !p.result.Stale:
		return renderError(vc, "Could not load this record", p.result.Err,
			bindingHint(Keys.Retry), bindingHint(Keys.Back))
	}

	doc, ok := p.doc()
	if !ok {
		return renderLoading(vc, "Loading...")
	}

	header := th.Title.Render(doc.Title) + staleNote(th, p.result.Stale)
	sub := th.Subtitle.Render(doc.Subtitle)

	if len(p.subs) == 0 {
		p.viewport.SetContent(p.body(doc, th))
		return lipgloss.JoinVertical(lipgloss.Left, header, sub, "", p.viewport.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, sub, "",
		renderFields(th, doc.Fields),
		"",
		p.renderTabs(th),
		p.renderSub(vc, p.subs[p.active]),
		components.RenderPagination(th, p.subPage(p.subs[p.active]), p.subs[p.active].result.Data.TotalPages),
	)
}

func (p *DetailPage) renderTabs(th styles.Theme) string {
	tabs := make([]string, 0, len(p.subs))
	for i, s := range p.subs {
		text := s.kind.Label()
		if s.result.OK() || s.result.Stale {
			text += " (" + formatCount(s.result.Data.Total) + ")"
		}
		if i == p.active {
			tabs = append(tabs, th.Highlight.Render(text))
		} else {
			tabs = append(tabs, th.Dim.Render(text))
		}
	}
	return strings.Join(tabs, "   ")
}

func (p *DetailPage) renderSub(vc viewContext, s *subList) string {
	label := strings.ToLower(s.kind.Label())
	switch {
	case s.result.Failed() && !s.result.Stale:
		return renderError(vc, "Could not load "+label, s.result.Err, bindingHint(Keys.Retry))
	case s.result.Status == cache.StatusLoading && len(s.table.Rows()) == 0:
		return renderLoading(vc, "Loading "+label+"...")
	case len(s.table.Rows()) == 0:
		return renderEmpty(vc, "No "+label+" for this game.")
	}
	return s.table.View(vc.Theme)
}
