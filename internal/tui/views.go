package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// viewContext carries what every page renders with
type viewContext struct {
	Theme   styles.Theme
	Width   int
	Height  int
	Spinner string // current spinner frame
}

// Page is the controller of one route
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(vc viewContext) string
	SetSize(width, height int)

	Title() string
	Hints() []hint

	// Capturing reports whether the page wants every key, e.g. while
	// a text input or modal has focus
	Capturing() bool

	// Cursor and SetCursor save and restore the selection across history.
	// A cursor set before rows arrive is applied when they do.
	Cursor() int
	SetCursor(i int)
}

// relocator is implemented by pages that can follow a query change
// without being rebuilt
type relocator interface {
	Relocate(loc querystate.Location) tea.Cmd
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		var line strings.Builder
		lineLen := 0
		for _, word := range strings.Fields(para) {
			wordLen := lipgloss.Width(word)
			if lineLen > 0 && lineLen+wordLen+1 > width {
				out = append(out, line.String())
				line.Reset()
				lineLen = 0
			}
			if lineLen > 0 {
				line.WriteByte(' ')
				lineLen++
			}
			line.WriteString(word)
			lineLen += wordLen
		}
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}

// renderLoading renders a spinner with a label
func renderLoading(vc viewContext, label string) string {
	return vc.Theme.Spinner.Render(vc.Spinner) + " " + vc.Theme.Dim.Render(label)
}

// describeError turns fetch failures into something a reader can act on
func describeError(err error) string {
	switch {
	case err == nil:
		return "Unknown error"
	case errors.Is(err, domain.ErrServerUnavailable):
		return "The archive is unreachable. Check the server URL and your connection."
	case errors.Is(err, domain.ErrNotFound):
		return "Not found."
	default:
		return err.Error()
	}
}

// renderError renders a failure with the keys that recover from it
func renderError(vc viewContext, title string, err error, hints ...hint) string {
	var b strings.Builder
	b.WriteString(vc.Theme.Error.Render(title))
	b.WriteString("\n\n")
	b.WriteString(vc.Theme.Subtitle.Render(wordWrap(describeError(err), max(vc.Width-4, 20))))
	if len(hints) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderHints(vc.Theme, hints))
	}
	return b.String()
}

// renderEmpty renders an empty state with its recovery keys
func renderEmpty(vc viewContext, message string, hints ...hint) string {
	out := vc.Theme.Dim.Render(message)
	if len(hints) > 0 {
		out += "\n\n" + renderHints(vc.Theme, hints)
	}
	return out
}

// renderHints renders "key desc" pairs on one line
func renderHints(th styles.Theme, hints []hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, th.HelpKey.Render(h.Key)+" "+th.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, th.Dim.Render(" · "))
}

// staleNote marks data shown after a failed refresh
func staleNote(th styles.Theme, stale bool) string {
	if !stale {
		return ""
	}
	return " " + th.DimBadge.Render("offline copy")
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%s %s", formatCount(n), plural)
}

// NotFoundPage renders unknown routes
type NotFoundPage struct {
	path string
}

func newNotFoundPage(loc querystate.Location) *NotFoundPage {
	return &NotFoundPage{path: loc.Path}
}

func (p *NotFoundPage) Init() tea.Cmd { return nil }

func (p *NotFoundPage) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		return navigatePathCmd("/")
	}
	return nil
}

func (p *NotFoundPage) View(vc viewContext) string {
	var b strings.Builder
	b.WriteString(vc.Theme.Title.Render("Page not found"))
	b.WriteString("\n\n")
	b.WriteString(vc.Theme.Dim.Render(fmt.Sprintf("Nothing lives at %s.", p.path)))
	b.WriteString("\n\n")
	b.WriteString(renderHints(vc.Theme, []hint{{Key: "enter", Desc: "dashboard"}, bindingHint(Keys.Back)}))
	return b.String()
}

func (p *NotFoundPage) SetSize(width, height int) {}
func (p *NotFoundPage) Title() string             { return "Not found" }
func (p *NotFoundPage) Hints() []hint             { return []hint{{Key: "enter", Desc: "dashboard"}} }
func (p *NotFoundPage) Capturing() bool           { return false }
func (p *NotFoundPage) Cursor() int               { return 0 }
func (p *NotFoundPage) SetCursor(int)             {}

// renderHelp renders the help screen
func renderHelp(th styles.Theme, width, height int) string {
	help := `
NAVIGATION                      LISTS
  j/k        Up/down               /      Search this list
  g/G        First/last            f      Filter loaded rows
  Enter      Open                  1-9    Pick a filter
  b/⌫        Back                  s      Sort field
  H          Dashboard             o      Ascending/descending
  Tab        Sidebar               x      Clear filters
  Ctrl+k     Search archive        [ ]    Previous/next page
                                   :      Go to page
DETAILS                         OTHER
  h/l        Switch section        r      Retry
  a          View all              Ctrl+r Reload everything
  o          Open game             Ctrl+b Toggle sidebar
                                   T      Toggle theme
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		th.Modal.Render(help))
}
