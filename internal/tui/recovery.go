package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// crashState is a panic caught while updating or rendering a page. It is
// shared by every copy of the Model so a panic caught in View survives into
// the next Update.
type crashState struct {
	active   bool
	err      error
	route    string
	stack    string
	reported bool
}

// capture records the first panic; later ones while the recovery screen is
// up are dropped
func (c *crashState) capture(r any, route string) {
	if c.active {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	*c = crashState{
		active: true,
		err:    err,
		route:  route,
		stack:  string(debug.Stack()),
	}
}

func (c *crashState) clear() {
	*c = crashState{}
}

// flushCrash logs a captured panic once and ships it to the archive
func (m Model) flushCrash() tea.Cmd {
	c := m.crash
	if !c.active || c.reported {
		return nil
	}
	c.reported = true

	m.env.Logger.Error("recovered from panic",
		"error", c.err,
		"route", c.route,
		"stack", c.stack,
	)
	return ReportLogCmd(m.env, domain.LogEntry{
		Level:     domain.LogLevelError,
		Message:   "recovered from panic: " + c.err.Error(),
		Stack:     c.stack,
		URL:       c.route,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// updateCrashed handles messages while the recovery screen is up
func (m Model) updateCrashed(msg tea.Msg) (tea.Model, tea.Cmd) {
	report := m.flushCrash()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.updateLayout()
		return m, report

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC || msg.String() == "q":
			return m, tea.Quit

		case key.Matches(msg, Keys.RecoverRetry):
			m.crash.clear()
			return m, tea.Batch(report, m.openFresh(m.location))

		case key.Matches(msg, Keys.RecoverHome):
			m.crash.clear()
			m.history.Clear()
			return m, tea.Batch(report, m.openFresh(querystate.ParseLocation("/")))

		case key.Matches(msg, Keys.RecoverReload):
			m.crash.clear()
			m.env.Services.Reload()
			return m, tea.Batch(report, m.openFresh(m.location))
		}
	}
	return m, report
}

// renderCrash renders the recovery screen
func renderCrash(th styles.Theme, c *crashState, width, height int) string {
	modalWidth := min(max(width*2/3, 40), 90)

	var b strings.Builder
	b.WriteString(th.Error.Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(wordWrap(c.err.Error(), modalWidth-6))
	if c.route != "" {
		b.WriteString("\n\n")
		b.WriteString(th.Dim.Render("at " + c.route))
	}
	b.WriteString("\n\n")
	b.WriteString(renderHints(th, []hint{
		bindingHint(Keys.RecoverRetry),
		bindingHint(Keys.RecoverHome),
		bindingHint(Keys.RecoverReload),
		{Key: "q", Desc: "quit"},
	}))

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		th.Modal.Width(modalWidth).Render(b.String()))
}
