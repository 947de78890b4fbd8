package tui

import "github.com/mmcdole/romshelf/internal/tui/styles"

// Session is the per-run UI state shared by every view: the theme and
// whether the sidebar is shown. The root model owns it and hands the
// resolved theme to views when they render.
type Session struct {
	Theme   string
	Sidebar bool
}

// Styles returns the theme the session selects
func (s Session) Styles() styles.Theme {
	return styles.New(s.Theme)
}

// WithToggledTheme returns the session with the other theme
func (s Session) WithToggledTheme() Session {
	s.Theme = styles.Toggle(s.Theme)
	return s
}

// WithToggledSidebar returns the session with the sidebar flipped
func (s Session) WithToggledSidebar() Session {
	s.Sidebar = !s.Sidebar
	return s
}
