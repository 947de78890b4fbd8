package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter        key.Binding
	Back         key.Binding
	Home         key.Binding
	FocusSidebar key.Binding
	Left         key.Binding
	Right        key.Binding

	// Actions
	Quit          key.Binding
	Help          key.Binding
	Escape        key.Binding
	Palette       key.Binding
	Search        key.Binding
	Sort          key.Binding
	Order         key.Binding
	ClearFilters  key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	GoToPage      key.Binding
	ViewAll       key.Binding
	OpenGame      key.Binding
	Retry         key.Binding
	Reload        key.Binding
	ToggleSidebar key.Binding
	ToggleTheme   key.Binding

	// Recovery screen
	RecoverRetry  key.Binding
	RecoverHome   key.Binding
	RecoverReload key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b/⌫", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "dashboard"),
		),
		FocusSidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sidebar"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous section"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next section"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "search archive"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "asc/desc"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "n", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "p", "pgup"),
			key.WithHelp("[", "previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to page"),
		),
		ViewAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "view all"),
		),
		OpenGame: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open game"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reload all"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "toggle sidebar"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle theme"),
		),

		// Recovery screen
		RecoverRetry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		RecoverHome: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		RecoverReload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reload"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// hint is one footer key hint
type hint struct {
	Key  string
	Desc string
}

func bindingHint(b key.Binding) hint {
	h := b.Help()
	return hint{Key: h.Key, Desc: h.Desc}
}
