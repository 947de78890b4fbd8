package tui

// Layout constants
const (
	SidebarWidth    = 24
	FooterHeight    = 1
	MinContentWidth = 40
)

// contentSize returns the area left to the page
func (m Model) contentSize() (int, int) {
	width := m.width
	if m.sidebarShown() {
		width -= SidebarWidth
	}
	return max(width, 1), max(m.height-FooterHeight, 1)
}

// sidebarShown reports whether the session wants the sidebar and it fits
func (m Model) sidebarShown() bool {
	return m.session.Sidebar && m.width-SidebarWidth >= MinContentWidth
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.palette.SetSize(m.width, m.height)
	m.sidebar.SetSize(SidebarWidth, m.height-FooterHeight)
	if !m.sidebarShown() && m.focusSidebar {
		m.setSidebarFocus(false)
	}

	if m.page != nil {
		m.page.SetSize(m.contentSize())
	}
}
