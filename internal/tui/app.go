package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/debounce"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui/components"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

const statusTimeout = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	env     *Env
	session Session
	theme   styles.Theme

	// Routing
	location querystate.Location
	history  *History
	page     Page

	// UI Components
	sidebar      *components.Sidebar
	focusSidebar bool
	palette      *components.Palette
	spinner      spinner.Model

	health cache.Result[domain.Health]

	// UI state
	showHelp  bool
	status    string
	statusErr bool
	statusID  int

	// Dimensions
	width  int
	height int
	ready  bool

	crash *crashState
}

// NewModel creates the application model opened at start, a route such as
// "/games?platform=3"
func NewModel(env *Env, session Session, start string) Model {
	env = env.withDefaults()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		env:      env,
		session:  session,
		theme:    session.Styles(),
		location: querystate.ParseLocation(start),
		history:  NewHistory(),
		sidebar:  components.NewSidebar(),
		palette:  components.NewPalette(env.Debounce, env.MinQuery),
		spinner:  sp,
		crash:    &crashState{},
	}
	m.page = m.newPage(m.location)
	m.sidebar.SetActivePath(m.location.Path)
	m.sidebar.SetStatus(healthStatus(m.theme, m.health))
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.page.Init(),
		CheckHealthCmd(m.env),
		HealthTickCmd(m.env.HealthInterval),
		m.spinner.Tick,
	)
}

// Location returns the current route
func (m Model) Location() querystate.Location {
	return m.location
}

// Page returns the current page controller
func (m Model) Page() Page {
	return m.page
}

// newPage builds the controller for loc
func (m Model) newPage(loc querystate.Location) Page {
	route := MatchRoute(loc)
	switch route.Kind {
	case RouteDashboard:
		return NewDashboard(m.env, m.health)
	case RouteList:
		if spec, ok := SpecFor(route.Resource); ok {
			return NewListPage(m.env, spec, loc)
		}
	case RouteDetail:
		return NewDetailPage(m.env, route.Resource, route.ID, loc)
	}
	return newNotFoundPage(loc)
}

// open moves to loc, letting the current page follow a query change on the
// same path when it can
func (m *Model) open(loc querystate.Location) tea.Cmd {
	if m.page != nil && loc.Path == m.location.Path {
		if r, ok := m.page.(relocator); ok {
			m.location = loc
			return r.Relocate(loc)
		}
	}
	return m.openFresh(loc)
}

// openFresh rebuilds the page for loc
func (m *Model) openFresh(loc querystate.Location) tea.Cmd {
	m.location = loc
	m.page = m.newPage(loc)
	m.sidebar.SetActivePath(loc.Path)
	if m.ready {
		m.page.SetSize(m.contentSize())
	}
	m.env.Logger.Debug("open route", "route", loc.String())
	return m.page.Init()
}

// Update handles all messages. A panic in a page is caught here and replaces
// the screen with the recovery view instead of ending the program.
func (m Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.crash.capture(r, m.location.String())
			model, cmd = m, m.flushCrash()
		}
	}()

	if m.crash.active {
		return m.updateCrashed(msg)
	}
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.palette.SetSpinner(m.spinner.View())
		return m, cmd

	case HealthTickMsg:
		return m, tea.Batch(CheckHealthCmd(m.env), HealthTickCmd(m.env.HealthInterval))

	case HealthLoadedMsg:
		if msg.Result.Failed() && !m.health.Failed() {
			m.env.Logger.Warn("archive unreachable", "error", msg.Result.Err)
		}
		m.health = msg.Result
		m.sidebar.SetStatus(healthStatus(m.theme, m.health))
		return m, m.page.Update(msg)

	case NavigateMsg:
		return m, m.navigate(msg.Location)

	case BackMsg:
		return m, m.back()

	case components.PaletteQueryMsg:
		res, fetch := m.env.Search.Start(msg.Query)
		gen := m.palette.Begin(res)
		if !fetch {
			return m, nil
		}
		cmds := make([]tea.Cmd, 0, len(search.Slots))
		for _, s := range search.Slots {
			cmds = append(cmds, SearchSlotCmd(m.env, gen, res.Query, s))
		}
		return m, tea.Batch(cmds...)

	case SearchSlotMsg:
		m.palette.SetSlot(msg.Gen, msg.Result)
		return m, nil

	case components.PaletteSelectMsg:
		return m, navigatePathCmd(msg.Suggestion.Route)

	case debounce.SettledMsg[string]:
		// Either the palette or a page search owns the tick
		return m, tea.Batch(m.palette.Update(msg), m.page.Update(msg))

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case SessionSavedMsg:
		if msg.Err != nil {
			m.env.Logger.Warn("failed to save session", "error", msg.Err)
			return m, m.setStatus("Could not save settings", true)
		}
		return m, nil

	case ErrMsg:
		m.env.Logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)
	}

	return m, m.page.Update(msg)
}

// navigate pushes the current location and opens loc
func (m *Model) navigate(loc querystate.Location) tea.Cmd {
	if loc.String() == m.location.String() {
		return nil
	}
	m.history.Push(m.location, m.page.Cursor())
	m.setSidebarFocus(false)
	return m.open(loc)
}

// back returns to the previous location and restores its selection
func (m *Model) back() tea.Cmd {
	loc, cursor, ok := m.history.Pop()
	if !ok {
		return nil
	}
	cmd := m.open(loc)
	m.page.SetCursor(cursor)
	return cmd
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	return ClearStatusCmd(m.statusID, statusTimeout)
}

func (m *Model) setSidebarFocus(focused bool) {
	m.focusSidebar = focused
	m.sidebar.SetFocused(focused)
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always available
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, Keys.Palette):
		return m, m.palette.Toggle()
	}

	if m.palette.IsVisible() {
		return m, m.palette.Update(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.page.Capturing() {
		return m, m.page.Update(msg)
	}

	if m.focusSidebar {
		switch {
		case key.Matches(msg, Keys.FocusSidebar, Keys.Escape):
			m.setSidebarFocus(false)
			return m, nil
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		}
		sec, cmd := m.sidebar.Update(msg)
		if sec != nil {
			m.setSidebarFocus(false)
			return m, tea.Batch(cmd, navigatePathCmd(sec.Path))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, Keys.Back):
		return m, backCmd

	case key.Matches(msg, Keys.Home):
		return m, navigatePathCmd("/")

	case key.Matches(msg, Keys.FocusSidebar):
		if m.sidebarShown() {
			m.setSidebarFocus(true)
		}
		return m, nil

	case key.Matches(msg, Keys.Reload):
		n := m.env.Services.Refresh()
		m.env.Logger.Info("cache refreshed", "entries", n)
		return m, tea.Batch(m.openFresh(m.location), m.setStatus("Refreshed", false))

	case key.Matches(msg, Keys.ToggleTheme):
		m.session = m.session.WithToggledTheme()
		m.theme = m.session.Styles()
		m.sidebar.SetStatus(healthStatus(m.theme, m.health))
		return m, SaveSessionCmd(m.env, m.session)

	case key.Matches(msg, Keys.ToggleSidebar):
		m.session = m.session.WithToggledSidebar()
		m.updateLayout()
		return m, SaveSessionCmd(m.env, m.session)
	}

	return m, m.page.Update(msg)
}

// View renders the application. A panic while rendering shows the recovery
// view; it is logged on the next update.
func (m Model) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			m.crash.capture(r, m.location.String())
			view = renderCrash(m.theme, m.crash, m.width, m.height)
		}
	}()

	if !m.ready {
		return "Loading..."
	}
	if m.crash.active {
		return renderCrash(m.theme, m.crash, m.width, m.height)
	}
	if m.showHelp {
		return renderHelp(m.theme, m.width, m.height)
	}
	if m.palette.IsVisible() {
		return m.palette.View(m.theme)
	}

	width, height := m.contentSize()
	vc := viewContext{
		Theme:   m.theme,
		Width:   width,
		Height:  height,
		Spinner: m.spinner.View(),
	}
	content := lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(m.page.View(vc))

	if m.sidebarShown() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(m.theme), content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	th := m.theme

	// Left side: status message or breadcrumb
	var left string
	switch {
	case m.status != "" && m.statusErr:
		left = th.Error.Render(m.status)
	case m.status != "":
		left = th.Dim.Render(m.status)
	default:
		left = th.Accent.Render(m.page.Title())
		if m.history.CanGoBack() {
			left = th.Dim.Render("‹ ") + left
		}
	}

	// Center section: page hints
	center := renderHints(th, m.page.Hints())

	// Right side: "? help" hint
	right := th.Accent.Render("?") + th.Dim.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth+2 >= m.width {
		// Not enough space - just left + right
		gap := max(m.width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}
