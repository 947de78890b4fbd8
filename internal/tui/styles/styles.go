package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Strong     lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
	Purple     lipgloss.Color
}

// Color palettes
var (
	Dark = Palette{
		Accent:     lipgloss.Color("#E5A00D"),
		Background: lipgloss.Color("#1F2937"),
		Surface:    lipgloss.Color("#374151"),
		Muted:      lipgloss.Color("#6B7280"),
		Text:       lipgloss.Color("#9CA3AF"),
		Strong:     lipgloss.Color("#F9FAFB"),
		Green:      lipgloss.Color("#10B981"),
		Red:        lipgloss.Color("#EF4444"),
		Blue:       lipgloss.Color("#3B82F6"),
		Purple:     lipgloss.Color("#A855F7"),
	}

	Light = Palette{
		Accent:     lipgloss.Color("#B45309"),
		Background: lipgloss.Color("#F9FAFB"),
		Surface:    lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Text:       lipgloss.Color("#374151"),
		Strong:     lipgloss.Color("#111827"),
		Green:      lipgloss.Color("#047857"),
		Red:        lipgloss.Color("#B91C1C"),
		Blue:       lipgloss.Color("#1D4ED8"),
		Purple:     lipgloss.Color("#7E22CE"),
	}
)

// Theme holds every style the views render with. It is a plain value built
// from a palette; views receive it from the session rather than reading
// globals.
type Theme struct {
	Name    string
	Palette Palette

	// Borders
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	// Text
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Dim       lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Highlight lipgloss.Style

	// Lists
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style
	Header       lipgloss.Style

	// Modals
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Badges
	Badge    lipgloss.Style
	DimBadge lipgloss.Style

	Spinner lipgloss.Style

	// Search match highlighting
	Match         lipgloss.Style
	MatchSelected lipgloss.Style
}

// New builds the named theme; unknown names get the dark theme
func New(name string) Theme {
	if name == ThemeLight {
		return build(ThemeLight, Light)
	}
	return build(ThemeDark, Dark)
}

func build(name string, p Palette) Theme {
	return Theme{
		Name:    name,
		Palette: p,

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted),

		Title:     lipgloss.NewStyle().Foreground(p.Strong).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(p.Text),
		Dim:       lipgloss.NewStyle().Foreground(p.Muted),
		Accent:    lipgloss.NewStyle().Foreground(p.Accent),
		Error:     lipgloss.NewStyle().Foreground(p.Red),
		Success:   lipgloss.NewStyle().Foreground(p.Green),
		Highlight: lipgloss.NewStyle().Foreground(p.Strong).Background(p.Accent).Padding(0, 1),

		SelectedItem: lipgloss.NewStyle().Foreground(p.Strong).Background(p.Surface),
		NormalItem:   lipgloss.NewStyle().Foreground(p.Text),
		Header:       lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2).
			Background(p.Background),
		ModalTitle: lipgloss.NewStyle().Foreground(p.Strong).Bold(true).MarginBottom(1),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Muted),

		Badge:    lipgloss.NewStyle().Foreground(p.Strong).Background(p.Accent).Padding(0, 1),
		DimBadge: lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 1),

		Spinner: lipgloss.NewStyle().Foreground(p.Accent),

		Match:         lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		MatchSelected: lipgloss.NewStyle().Foreground(p.Accent).Background(p.Surface).Bold(true),
	}
}

// Toggle returns the name of the other theme
func Toggle(name string) string {
	if name == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Truncate shortens s to width cells, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Pad truncates or right-pads s to exactly width cells
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// HighlightMatches renders text with the runes at matched positions
// emphasized
func (t Theme) HighlightMatches(text string, matched []int, selected bool) string {
	normal := t.NormalItem
	match := t.Match
	if selected {
		normal = t.SelectedItem
		match = t.MatchSelected
	}
	if len(matched) == 0 {
		return normal.Render(text)
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	runes := []rune(text)
	var b strings.Builder
	for i := 0; i < len(runes); {
		isMatch := set[i]
		start := i
		for i < len(runes) && set[i] == isMatch {
			i++
		}
		chunk := string(runes[start:i])
		if isMatch {
			b.WriteString(match.Render(chunk))
		} else {
			b.WriteString(normal.Render(chunk))
		}
	}
	return b.String()
}
