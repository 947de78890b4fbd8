package domain

// Record is the common interface for list entries of every resource kind.
// It provides what the palette, tables and breadcrumbs need without knowing
// the concrete type.
type Record interface {
	// GetID returns the record key
	GetID() int

	// GetTitle returns the display title
	GetTitle() string

	// GetSubtitle returns secondary info for display (console, game, category)
	GetSubtitle() string

	// GetKind returns the collection the record belongs to
	GetKind() Kind
}

func (g Game) GetID() int       { return g.GameKey }
func (g Game) GetTitle() string { return g.Title }
func (g Game) GetKind() Kind    { return KindGame }
func (g Game) GetSubtitle() string {
	return joinNonEmpty(g.PlatformName, g.GenreName)
}

func (h Hack) GetID() int       { return h.HackKey }
func (h Hack) GetTitle() string { return h.Title }
func (h Hack) GetKind() Kind    { return KindHack }
func (h Hack) GetSubtitle() string {
	return joinNonEmpty(h.GameTitle, h.ConsoleName)
}

func (t Translation) GetID() int       { return t.TransKey }
func (t Translation) GetTitle() string { return t.DisplayTitle() }
func (t Translation) GetKind() Kind    { return KindTranslation }
func (t Translation) GetSubtitle() string {
	return joinNonEmpty(t.LanguageName, t.ConsoleName)
}

func (u Utility) GetID() int       { return u.UtilKey }
func (u Utility) GetTitle() string { return u.Title }
func (u Utility) GetKind() Kind    { return KindUtility }
func (u Utility) GetSubtitle() string {
	return joinNonEmpty(u.CategoryName, u.OSName)
}

func (d Document) GetID() int       { return d.DocKey }
func (d Document) GetTitle() string { return d.Title }
func (d Document) GetKind() Kind    { return KindDocument }
func (d Document) GetSubtitle() string {
	return joinNonEmpty(d.CategoryName, d.ConsoleName)
}

func (h Homebrew) GetID() int       { return h.HomebrewKey }
func (h Homebrew) GetTitle() string { return h.Title }
func (h Homebrew) GetKind() Kind    { return KindHomebrew }
func (h Homebrew) GetSubtitle() string {
	return joinNonEmpty(h.CategoryName, h.PlatformName)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " · "
		}
		out += p
	}
	return out
}
