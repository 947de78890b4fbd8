package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// dashboardKinds are the collections counted on the dashboard, in order
var dashboardKinds = []domain.Kind{
	domain.KindGame,
	domain.KindHack,
	domain.KindTranslation,
	domain.KindUtility,
	domain.KindDocument,
	domain.KindHomebrew,
}

// Dashboard is the landing page: collection totals, archive health and
// lookup table sizes
type Dashboard struct {
	env      *Env
	table    *components.Table
	totals   map[domain.Kind]cache.Result[int]
	health   cache.Result[domain.Health]
	metadata cache.Result[domain.Metadata]

	width, height int
}

// NewDashboard creates the dashboard. health is the last known probe result.
func NewDashboard(env *Env, health cache.Result[domain.Health]) *Dashboard {
	d := &Dashboard{
		env: env,
		table: components.NewTable([]components.Column{
			{Title: "Collection"},
			{Title: "Records", Width: 12},
		}),
		totals: make(map[domain.Kind]cache.Result[int], len(dashboardKinds)),
		health: health,
	}
	d.refreshRows()
	return d
}

func (d *Dashboard) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(dashboardKinds)+1)
	for _, k := range dashboardKinds {
		d.totals[k] = cache.Result[int]{Status: cache.StatusLoading}
		cmds = append(cmds, LoadTotalCmd(d.env, k))
	}
	d.metadata.Status = cache.StatusLoading
	cmds = append(cmds, LoadMetadataCmd(d.env))
	d.refreshRows()
	return tea.Batch(cmds...)
}

func (d *Dashboard) refreshRows() {
	rows := make([]components.Row, 0, len(dashboardKinds))
	for _, k := range dashboardKinds {
		count := "..."
		if r, ok := d.totals[k]; ok {
			switch {
			case r.OK() || r.Stale:
				count = formatCount(r.Data)
			case r.Failed():
				count = "error"
			}
		}
		rows = append(rows, components.Row{
			Route: "/" + string(k),
			Cells: []string{k.Label(), count},
		})
	}
	cursor := d.table.Cursor()
	d.table.SetRows(rows)
	d.table.SetCursor(cursor)
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TotalLoadedMsg:
		d.totals[msg.Kind] = msg.Result
		d.refreshRows()
		return nil

	case HealthLoadedMsg:
		d.health = msg.Result
		return nil

	case MetadataLoadedMsg:
		d.metadata = msg.Result
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Enter):
			if row, ok := d.table.Selected(); ok {
				return navigatePathCmd(row.Route)
			}
			return nil
		case key.Matches(msg, Keys.Retry):
			return d.Init()
		}
		return d.table.Update(msg)
	}
	return nil
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.table.SetSize(min(width, 48), len(dashboardKinds)+components.TableChromeLines)
}

func (d *Dashboard) Title() string { return "Dashboard" }

func (d *Dashboard) Hints() []hint {
	return []hint{bindingHint(Keys.Enter), bindingHint(Keys.Palette), bindingHint(Keys.Retry)}
}

func (d *Dashboard) Capturing() bool { return d.table.IsFilterTyping() }
func (d *Dashboard) Cursor() int     { return d.table.Cursor() }
func (d *Dashboard) SetCursor(i int) { d.table.SetCursor(i) }

func (d *Dashboard) View(vc viewContext) string {
	th := vc.Theme
	sections := []string{
		th.Title.Render("ROM archive"),
		th.Dim.Render("Browse games, hacks, translations and more. Ctrl+k searches everything."),
		"",
		d.table.View(th),
		"",
		th.Header.Render("Archive"),
		d.renderHealth(vc),
		"",
		th.Header.Render("Lookups"),
		d.renderLookups(vc),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) renderHealth(vc viewContext) string {
	return healthLine(vc, d.health)
}

// healthLine summarizes a health probe result
func healthLine(vc viewContext, r cache.Result[domain.Health]) string {
	th := vc.Theme
	switch {
	case r.Status == cache.StatusIdle || (r.Status == cache.StatusLoading && !r.Stale):
		return renderLoading(vc, "checking...")
	case r.Failed() && !r.Stale:
		return th.Error.Render("● unreachable") + " " + th.Dim.Render(describeError(r.Err))
	}
	h := r.Data
	status := th.Success.Render("● healthy")
	if !h.Healthy() {
		status = th.Error.Render("● " + h.Status)
	}
	parts := []string{status}
	if h.Version != "" {
		parts = append(parts, th.Dim.Render("v"+h.Version))
	}
	if h.Database != "" {
		parts = append(parts, th.Dim.Render("database "+h.Database))
	}
	return strings.Join(parts, "  ") + staleNote(th, r.Stale)
}

// healthStatus is the short form shown in the sidebar
func healthStatus(th styles.Theme, r cache.Result[domain.Health]) string {
	switch {
	case r.OK() && r.Data.Healthy():
		return th.Success.Render("● online")
	case r.OK():
		return th.Error.Render("● " + r.Data.Status)
	case r.Failed():
		return th.Error.Render("● offline")
	}
	return th.Dim.Render("○ checking")
}

func (d *Dashboard) renderLookups(vc viewContext) string {
	th := vc.Theme
	r := d.metadata
	switch {
	case r.Status == cache.StatusLoading && !r.Stale:
		return renderLoading(vc, "loading...")
	case r.Failed() && !r.Stale:
		return th.Error.Render("Could not load lookup tables")
	case !r.OK() && !r.Stale:
		return ""
	}
	m := r.Data
	counts := []string{
		fmt.Sprintf("%d consoles", len(m.Consoles)),
		fmt.Sprintf("%d genres", len(m.Genres)),
		fmt.Sprintf("%d languages", len(m.Languages)),
		fmt.Sprintf("%d hack categories", len(m.HackCategories)),
	}
	return th.Dim.Render(strings.Join(counts, " · ")) + staleNote(th, r.Stale)
}
