package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/debounce"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/service"
	"github.com/mmcdole/romshelf/internal/tui/components"
)

// listChromeLines is the header, the query line and the pagination bar
const listChromeLines = 4

// ListPage browses one resource collection. Its query, filters, sort and
// page live in the location; every change goes through the binder as a
// single navigation.
type ListPage struct {
	env    *Env
	spec   ListSpec
	binder *querystate.Binder

	// navigation produced by the binder, handed to the app on the next return
	pending tea.Cmd

	table       *components.Table
	search      textinput.Model
	debounce    debounce.Debouncer[string]
	sortModal   *components.SortModal
	facetPicker *components.FacetPicker
	pageModal   *components.PageModal

	key      string
	result   cache.Result[rowPage]
	metadata *domain.Metadata

	pendingCursor int
	width, height int
}

// NewListPage creates the page for spec at loc
func NewListPage(env *Env, spec ListSpec, loc querystate.Location) *ListPage {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search " + strings.ToLower(spec.Kind.Label())

	p := &ListPage{
		env:           env,
		spec:          spec,
		table:         components.NewTable(spec.Columns),
		search:        ti,
		debounce:      debounce.New[string](env.Debounce),
		sortModal:     components.NewSortModal(),
		facetPicker:   components.NewFacetPicker(),
		pageModal:     components.NewPageModal(),
		pendingCursor: -1,
	}
	p.bind(loc)
	return p
}

func (p *ListPage) bind(loc querystate.Location) {
	p.binder = querystate.NewBinder(loc, p.spec.Defaults(), func(next querystate.Location) {
		p.pending = navigateCmd(next)
	})
	if !p.search.Focused() {
		p.search.SetValue(p.binder.State().String(paramQuery))
	}
}

// update applies updates in one navigation and returns it
func (p *ListPage) update(updates map[string]any) tea.Cmd {
	p.binder.Update(updates)
	return p.takePending()
}

func (p *ListPage) takePending() tea.Cmd {
	cmd := p.pending
	p.pending = nil
	return cmd
}

func (p *ListPage) Init() tea.Cmd {
	return tea.Batch(p.load(), LoadMetadataCmd(p.env))
}

// Relocate follows a query change on the same route
func (p *ListPage) Relocate(loc querystate.Location) tea.Cmd {
	p.bind(loc)
	return p.load()
}

// Params returns the backend query of the current location
func (p *ListPage) Params() domain.ListParams {
	return p.spec.Params(p.binder.State())
}

func (p *ListPage) load() tea.Cmd {
	params := p.Params()
	p.key = service.ListKey(p.spec.Kind, params)
	p.result.Status = cache.StatusLoading
	p.result.Err = nil
	return LoadListCmd(p.env, p.spec, params, p.key)
}

func (p *ListPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		if msg.Key != p.key {
			return nil
		}
		p.result = msg.Result
		if msg.Result.OK() || msg.Result.Stale {
			p.table.SetRows(msg.Result.Data.Rows)
			if p.pendingCursor >= 0 {
				p.table.SetCursor(p.pendingCursor)
				p.pendingCursor = -1
			}
		}
		return nil

	case MetadataLoadedMsg:
		if msg.Result.OK() || msg.Result.Stale {
			md := msg.Result.Data
			p.metadata = &md
			if p.facetPicker.IsVisible() {
				if f, ok := p.facet(p.facetPicker.Key()); ok {
					p.facetPicker.SetOptions(md.Options(f.Lookup))
				}
			}
		}
		return nil

	case debounce.SettledMsg[string]:
		q, ok := p.debounce.Settle(msg)
		if !ok {
			return nil
		}
		return p.applyQuery(q)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

// applyQuery sets the search text, going back to the first page
func (p *ListPage) applyQuery(q string) tea.Cmd {
	q = strings.TrimSpace(q)
	if q == p.binder.State().String(paramQuery) {
		return nil
	}
	return p.update(map[string]any{paramQuery: q, paramPage: 1})
}

func (p *ListPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Modals first
	if p.pageModal.IsVisible() {
		cmd, page := p.pageModal.Update(msg)
		if page > 0 {
			return tea.Batch(cmd, p.update(map[string]any{paramPage: page}))
		}
		return cmd
	}
	if p.sortModal.IsVisible() {
		_, sel := p.sortModal.HandleKey(msg)
		if sel != nil {
			return p.setSort(*sel)
		}
		return nil
	}
	if p.facetPicker.IsVisible() {
		_, choice := p.facetPicker.HandleKey(msg)
		if choice != nil {
			return p.update(map[string]any{choice.Key: choice.ID, paramPage: 1})
		}
		return nil
	}

	if p.search.Focused() {
		return p.handleSearchKey(msg)
	}

	if p.table.Consumes(msg) {
		return p.table.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Search):
		return p.search.Focus()

	case key.Matches(msg, Keys.Sort):
		p.sortModal.Show(p.spec.Sorts, p.spec.Sort(p.binder.State()))
		return nil

	case key.Matches(msg, Keys.Order):
		return p.setSort(p.spec.Sort(p.binder.State()).Toggled())

	case key.Matches(msg, Keys.ClearFilters):
		if p.binder.Active(paramPage, paramSortBy, paramSortOrder) == 0 {
			return nil
		}
		p.search.SetValue("")
		updates := map[string]any{paramQuery: nil, paramPage: nil}
		for _, f := range p.spec.Facets {
			updates[f.Key] = nil
		}
		return p.update(updates)

	case key.Matches(msg, Keys.NextPage):
		if page := p.page(); page < p.totalPages() {
			return p.update(map[string]any{paramPage: page + 1})
		}
		return nil

	case key.Matches(msg, Keys.PrevPage):
		if page := p.page(); page > 1 {
			return p.update(map[string]any{paramPage: page - 1})
		}
		return nil

	case key.Matches(msg, Keys.GoToPage):
		if total := p.totalPages(); total > 1 {
			return p.pageModal.Show(total)
		}
		return nil

	case key.Matches(msg, Keys.Retry):
		return p.load()

	case key.Matches(msg, Keys.Enter):
		if row, ok := p.table.Selected(); ok {
			return navigatePathCmd(row.Route)
		}
		return nil
	}

	if i, ok := facetIndex(msg); ok {
		return p.pickFacet(i)
	}

	return p.table.Update(msg)
}

func (p *ListPage) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.debounce.Stop()
		p.search.Blur()
		p.search.SetValue(p.binder.State().String(paramQuery))
		return nil
	case tea.KeyEnter:
		p.debounce.Stop()
		p.search.Blur()
		return p.applyQuery(p.search.Value())
	}

	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		return tea.Batch(cmd, p.debounce.Trigger(p.search.Value()))
	}
	return cmd
}

func (p *ListPage) setSort(sel components.SortSelection) tea.Cmd {
	return p.update(map[string]any{
		paramSortBy:    sel.Field,
		paramSortOrder: sel.Order,
		paramPage:      1,
	})
}

// facetIndex maps "1".."9" to a zero-based facet index
func facetIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func (p *ListPage) pickFacet(i int) tea.Cmd {
	facets := p.spec.pickable()
	if i >= len(facets) {
		return nil
	}
	f := facets[i]
	state := p.binder.State()

	if f.Kind == facetFlag {
		return p.update(map[string]any{f.Key: !state.Bool(f.Key), paramPage: 1})
	}

	var options []domain.Option
	if p.metadata != nil {
		options = p.metadata.Options(f.Lookup)
	}
	p.facetPicker.Show(f.Key, f.Label, options, state.Int(f.Key))
	if p.metadata == nil {
		return LoadMetadataCmd(p.env)
	}
	return nil
}

func (p *ListPage) facet(key string) (FacetSpec, bool) {
	for _, f := range p.spec.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return FacetSpec{}, false
}

func (p *ListPage) page() int {
	return p.Params().Page
}

func (p *ListPage) totalPages() int {
	return p.result.Data.TotalPages
}

func (p *ListPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.search.Width = max(width/2, 20)
	p.table.SetSize(width, max(height-listChromeLines, 1))
}

func (p *ListPage) Title() string { return p.spec.Kind.Label() }

func (p *ListPage) Hints() []hint {
	hints := []hint{bindingHint(Keys.Search)}
	if n := len(p.spec.pickable()); n > 0 {
		hints = append(hints, hint{Key: fmt.Sprintf("1-%d", n), Desc: "filter"})
	}
	hints = append(hints, bindingHint(Keys.Sort), bindingHint(Keys.Order))
	if p.binder.Active(paramPage, paramSortBy, paramSortOrder) > 0 {
		hints = append(hints, bindingHint(Keys.ClearFilters))
	}
	if p.totalPages() > 1 {
		hints = append(hints, hint{Key: "[ ]", Desc: "page"}, bindingHint(Keys.GoToPage))
	}
	return hints
}

func (p *ListPage) Capturing() bool {
	return p.search.Focused() ||
		p.table.IsFilterTyping() ||
		p.sortModal.IsVisible() ||
		p.facetPicker.IsVisible() ||
		p.pageModal.IsVisible()
}

func (p *ListPage) Cursor() int { return p.table.Cursor() }

func (p *ListPage) SetCursor(i int) {
	if p.result.Status == cache.StatusLoading {
		p.pendingCursor = i
		return
	}
	p.table.SetCursor(i)
}

func (p *ListPage) View(vc viewContext) string {
	th := vc.Theme
	state := p.binder.State()
	noun := strings.ToLower(p.spec.Kind.Label())

	// Header: title, count and sort
	header := th.Title.Render(p.spec.Kind.Label())
	if p.result.OK() || p.result.Stale {
		header += "  " + th.Dim.Render(countLabel(p.result.Data.Total, "result", "results"))
	}
	sort := p.spec.Sort(state)
	arrow := "↑"
	if sort.Order == domain.SortDesc {
		arrow = "↓"
	}
	header += "  " + th.DimBadge.Render("sort: "+p.spec.SortLabel(sort.Field)+" "+arrow)
	if p.result.Status == cache.StatusLoading && len(p.table.Rows()) > 0 {
		header += "  " + th.Spinner.Render(vc.Spinner)
	}
	header += staleNote(th, p.result.Stale)

	// Query line: search input and active filter chips
	var query []string
	if p.search.Focused() || p.search.Value() != "" {
		query = append(query, p.search.View())
	} else {
		query = append(query, th.Dim.Render("/ search"))
	}
	query = append(query, p.chips(vc, state)...)
	queryLine := strings.Join(query, "  ")

	var body string
	switch {
	case p.result.Failed() && !p.result.Stale:
		body = renderError(vc, "Could not load "+noun, p.result.Err, bindingHint(Keys.Retry))
	case p.result.Status == cache.StatusLoading && len(p.table.Rows()) == 0:
		body = renderLoading(vc, "Loading "+noun+"...")
	case (p.result.OK() || p.result.Stale) && len(p.result.Data.Rows) == 0:
		var hints []hint
		if p.binder.Active(paramPage, paramSortBy, paramSortOrder) > 0 {
			hints = append(hints, bindingHint(Keys.ClearFilters))
		}
		msg := "No " + noun + " match."
		if page := p.page(); page > 1 && page > p.result.Data.TotalPages {
			msg = fmt.Sprintf("Page %d is past the end of the results.", page)
			hints = append(hints, bindingHint(Keys.PrevPage))
		}
		body = renderEmpty(vc, msg, hints...)
	default:
		body = p.table.View(th)
	}
	body = lipgloss.NewStyle().Height(max(p.height-listChromeLines, 1)).Render(body)

	pager := components.RenderPagination(th, p.page(), p.totalPages())

	view := lipgloss.JoinVertical(lipgloss.Left, header, queryLine, body, pager)

	var modal string
	switch {
	case p.pageModal.IsVisible():
		modal = p.pageModal.View(th)
	case p.sortModal.IsVisible():
		modal = p.sortModal.View(th)
	case p.facetPicker.IsVisible():
		modal = p.facetPicker.View(th)
	}
	if modal != "" {
		view = lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return view
}

// chips renders the facets that differ from their defaults
func (p *ListPage) chips(vc viewContext, state querystate.State) []string {
	th := vc.Theme
	var out []string
	for _, f := range p.spec.Facets {
		var text string
		switch f.Kind {
		case facetFlag:
			if !state.Bool(f.Key) {
				continue
			}
			text = f.Label
		case facetLink:
			id := state.Int(f.Key)
			if id <= 0 {
				continue
			}
			text = f.Label + " #" + strconv.Itoa(id)
		default:
			id := state.Int(f.Key)
			if id <= 0 {
				continue
			}
			label := "#" + strconv.Itoa(id)
			if p.metadata != nil {
				if l := p.metadata.Label(f.Lookup, id); l != "" {
					label = l
				}
			}
			text = f.Label + ": " + label
		}
		out = append(out, th.Badge.Render(text))
	}
	return out
}
