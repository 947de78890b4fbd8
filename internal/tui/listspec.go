package tui

import (
	"context"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/service"
	"github.com/mmcdole/romshelf/internal/tui/components"
)

// Query keys shared by every list route
const (
	paramQuery     = "q"
	paramPage      = "page"
	paramSortBy    = "sort_by"
	paramSortOrder = "sort_order"
)

type facetKind int

const (
	facetLookup facetKind = iota // picked from a metadata table
	facetFlag                    // toggled on and off
	facetLink                    // set by links from other pages only
)

// FacetSpec describes one filter of a list route
type FacetSpec struct {
	Key    string
	Label  string
	Kind   facetKind
	Lookup domain.Lookup
}

// ListSpec declares how a list route is queried and rendered
type ListSpec struct {
	Kind      domain.Kind
	PageSize  int
	Sorts     []components.SortOption
	SortBy    string
	SortOrder string
	Facets    []FacetSpec
	Columns   []components.Column

	fetch func(ctx context.Context, s *service.Services, params domain.ListParams) cache.Result[rowPage]
}

// Defaults returns the query defaults bound to the route
func (s ListSpec) Defaults() querystate.Defaults {
	d := querystate.Defaults{
		paramQuery:     "",
		paramPage:      1,
		paramSortBy:    s.SortBy,
		paramSortOrder: s.SortOrder,
	}
	for _, f := range s.Facets {
		if f.Kind == facetFlag {
			d[f.Key] = false
		} else {
			d[f.Key] = 0
		}
	}
	return d
}

// Params turns a resolved state into a backend query. Out of range pages
// and unknown sorts fall back to the route defaults.
func (s ListSpec) Params(state querystate.State) domain.ListParams {
	p := domain.ListParams{
		Query:     state.String(paramQuery),
		Page:      max(state.Int(paramPage), 1),
		PageSize:  s.PageSize,
		SortBy:    s.SortBy,
		SortOrder: s.SortOrder,
	}

	if by := state.String(paramSortBy); s.hasSort(by) {
		p.SortBy = by
	}
	if order := state.String(paramSortOrder); order == domain.SortAsc || order == domain.SortDesc {
		p.SortOrder = order
	}

	for _, f := range s.Facets {
		if f.Kind == facetFlag {
			if state.Bool(f.Key) {
				p = p.WithFlag(f.Key, true)
			}
			continue
		}
		if id := state.Int(f.Key); id > 0 {
			p = p.WithFilter(f.Key, id)
		}
	}
	return p
}

// Sort returns the effective sort of state
func (s ListSpec) Sort(state querystate.State) components.SortSelection {
	p := s.Params(state)
	return components.SortSelection{Field: p.SortBy, Order: p.SortOrder}
}

// SortLabel returns the display label of a sort field
func (s ListSpec) SortLabel(field string) string {
	for _, o := range s.Sorts {
		if o.Field == field {
			return o.Label
		}
	}
	return field
}

func (s ListSpec) hasSort(field string) bool {
	for _, o := range s.Sorts {
		if o.Field == field {
			return true
		}
	}
	return false
}

// pickable returns the facets reachable from the number keys
func (s ListSpec) pickable() []FacetSpec {
	var out []FacetSpec
	for _, f := range s.Facets {
		if f.Kind != facetLink {
			out = append(out, f)
		}
	}
	return out
}

func sortOpt(field, label, order string) components.SortOption {
	return components.SortOption{Field: field, Label: label, Order: order}
}

var listSpecs = map[domain.Kind]ListSpec{
	domain.KindGame: {
		Kind:     domain.KindGame,
		PageSize: 50,
		Sorts: []components.SortOption{
			sortOpt("gametitle", "Title", domain.SortAsc),
			sortOpt("publisher", "Publisher", domain.SortAsc),
			sortOpt("gamekey", "Newest", domain.SortDesc),
		},
		SortBy:    "gametitle",
		SortOrder: domain.SortAsc,
		Facets: []FacetSpec{
			{Key: domain.FacetPlatform, Label: "Platform", Kind: facetLookup, Lookup: domain.LookupConsoles},
			{Key: domain.FacetGenre, Label: "Genre", Kind: facetLookup, Lookup: domain.LookupGenres},
			{Key: domain.FacetHasHacks, Label: "Has hacks", Kind: facetFlag},
			{Key: domain.FacetHasTranslations, Label: "Has translations", Kind: facetFlag},
		},
		Columns: []components.Column{
			{Title: "Title"},
			{Title: "Platform", Width: 18},
			{Title: "Genre", Width: 16},
			{Title: "Content", Width: 10},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Games.List(ctx, p), gameCells)
		},
	},
	domain.KindHack: {
		Kind:     domain.KindHack,
		PageSize: 24,
		Sorts: []components.SortOption{
			sortOpt("hacktitle", "Title", domain.SortAsc),
			sortOpt("downloads", "Downloads", domain.SortDesc),
			sortOpt("created", "Added", domain.SortDesc),
			sortOpt("lastmod", "Updated", domain.SortDesc),
		},
		SortBy:    "hacktitle",
		SortOrder: domain.SortAsc,
		Facets: []FacetSpec{
			{Key: domain.FacetGame, Label: "Game", Kind: facetLink},
			{Key: domain.FacetConsole, Label: "Console", Kind: facetLookup, Lookup: domain.LookupConsoles},
			{Key: domain.FacetCategory, Label: "Category", Kind: facetLookup, Lookup: domain.LookupHackCategories},
		},
		Columns: []components.Column{
			{Title: "Title"},
			{Title: "Game", Width: 24},
			{Title: "Console", Width: 12},
			{Title: "Category", Width: 14},
			{Title: "Downloads", Width: 9},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Hacks.List(ctx, p), hackCells)
		},
	},
	domain.KindTranslation: {
		Kind:     domain.KindTranslation,
		PageSize: 24,
		Sorts: []components.SortOption{
			sortOpt("created", "Added", domain.SortDesc),
			sortOpt("downloads", "Downloads", domain.SortDesc),
			sortOpt("lastmod", "Updated", domain.SortDesc),
		},
		SortBy:    "created",
		SortOrder: domain.SortDesc,
		Facets: []FacetSpec{
			{Key: domain.FacetGame, Label: "Game", Kind: facetLink},
			{Key: domain.FacetConsole, Label: "Console", Kind: facetLookup, Lookup: domain.LookupConsoles},
			{Key: domain.FacetLanguage, Label: "Language", Kind: facetLookup, Lookup: domain.LookupLanguages},
			{Key: domain.FacetStatus, Label: "Status", Kind: facetLookup, Lookup: domain.LookupPatchStatuses},
		},
		Columns: []components.Column{
			{Title: "Game title"},
			{Title: "Language", Width: 12},
			{Title: "Console", Width: 12},
			{Title: "Status", Width: 12},
			{Title: "Version", Width: 8},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Translations.List(ctx, p), translationCells)
		},
	},
	domain.KindUtility: {
		Kind:     domain.KindUtility,
		PageSize: 24,
		Sorts: []components.SortOption{
			sortOpt("title", "Title", domain.SortAsc),
			sortOpt("downloads", "Downloads", domain.SortDesc),
			sortOpt("created", "Added", domain.SortDesc),
			sortOpt("reldate", "Released", domain.SortDesc),
		},
		SortBy:    "title",
		SortOrder: domain.SortAsc,
		Facets: []FacetSpec{
			{Key: domain.FacetCategory, Label: "Category", Kind: facetLookup, Lookup: domain.LookupUtilityCategories},
			{Key: domain.FacetConsole, Label: "Console", Kind: facetLookup, Lookup: domain.LookupConsoles},
			{Key: domain.FacetOS, Label: "OS", Kind: facetLookup, Lookup: domain.LookupOperatingSystems},
		},
		Columns: []components.Column{
			{Title: "Title"},
			{Title: "Category", Width: 16},
			{Title: "OS", Width: 12},
			{Title: "Downloads", Width: 9},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Utilities.List(ctx, p), utilityCells)
		},
	},
	domain.KindDocument: {
		Kind:     domain.KindDocument,
		PageSize: 24,
		Sorts: []components.SortOption{
			sortOpt("title", "Title", domain.SortAsc),
			sortOpt("downloads", "Downloads", domain.SortDesc),
			sortOpt("created", "Added", domain.SortDesc),
		},
		SortBy:    "title",
		SortOrder: domain.SortAsc,
		Facets: []FacetSpec{
			{Key: domain.FacetCategory, Label: "Category", Kind: facetLookup, Lookup: domain.LookupDocumentCategories},
			{Key: domain.FacetConsole, Label: "Console", Kind: facetLookup, Lookup: domain.LookupConsoles},
			{Key: domain.FacetSkillLevel, Label: "Skill level", Kind: facetLookup, Lookup: domain.LookupSkillLevels},
		},
		Columns: []components.Column{
			{Title: "Title"},
			{Title: "Category", Width: 16},
			{Title: "Console", Width: 12},
			{Title: "Level", Width: 12},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Documents.List(ctx, p), documentCells)
		},
	},
	domain.KindHomebrew: {
		Kind:     domain.KindHomebrew,
		PageSize: 24,
		Sorts: []components.SortOption{
			sortOpt("title", "Title", domain.SortAsc),
			sortOpt("downloads", "Downloads", domain.SortDesc),
			sortOpt("created", "Added", domain.SortDesc),
			sortOpt("reldate", "Released", domain.SortDesc),
		},
		SortBy:    "title",
		SortOrder: domain.SortAsc,
		Facets: []FacetSpec{
			{Key: domain.FacetCategory, Label: "Category", Kind: facetLookup, Lookup: domain.LookupHomebrewCategories},
			{Key: domain.FacetPlatform, Label: "Platform", Kind: facetLookup, Lookup: domain.LookupConsoles},
		},
		Columns: []components.Column{
			{Title: "Title"},
			{Title: "Category", Width: 16},
			{Title: "Platform", Width: 14},
			{Title: "Downloads", Width: 9},
		},
		fetch: func(ctx context.Context, s *service.Services, p domain.ListParams) cache.Result[rowPage] {
			return toRows(s.Homebrew.List(ctx, p), homebrewCells)
		},
	},
}

// SpecFor returns the list declaration of kind
func SpecFor(kind domain.Kind) (ListSpec, bool) {
	s, ok := listSpecs[kind]
	return s, ok
}
