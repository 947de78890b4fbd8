package domain

import (
	"net/url"
	"strconv"
)

// Page size bounds accepted by the archive API
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Facet query keys used by list endpoints
const (
	FacetPlatform        = "platform"
	FacetGenre           = "genre"
	FacetHasHacks        = "has_hacks"
	FacetHasTranslations = "has_translations"
	FacetGame            = "game"
	FacetConsole         = "console"
	FacetCategory        = "category"
	FacetLanguage        = "language"
	FacetStatus          = "status"
	FacetOS              = "os"
	FacetSkillLevel      = "skill_level"
)

// Sort orders
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams is the query of a list endpoint. Zero-valued fields are omitted
// from the request so the backend applies its own defaults.
type ListParams struct {
	Query     string
	Filters   map[string]int  // categorical facets; 0 means unset
	Flags     map[string]bool // boolean facets; false means unset
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// WithFilter returns a copy of p with facet key set to id
func (p ListParams) WithFilter(key string, id int) ListParams {
	filters := make(map[string]int, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[key] = id
	p.Filters = filters
	return p
}

// WithFlag returns a copy of p with boolean facet key set
func (p ListParams) WithFlag(key string, on bool) ListParams {
	flags := make(map[string]bool, len(p.Flags)+1)
	for k, v := range p.Flags {
		flags[k] = v
	}
	flags[key] = on
	p.Flags = flags
	return p
}

// Values encodes the params as a query string. url.Values.Encode sorts by
// key, so two params with the same content always encode identically.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	for key, id := range p.Filters {
		if id != 0 {
			v.Set(key, strconv.Itoa(id))
		}
	}
	for key, on := range p.Flags {
		if on {
			v.Set(key, "true")
		}
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		size := p.PageSize
		if size > MaxPageSize {
			size = MaxPageSize
		}
		v.Set("page_size", strconv.Itoa(size))
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sort_order", p.SortOrder)
	}
	return v
}

// PageParams builds the query of a paginated sub-resource
func PageParams(page, pageSize int) url.Values {
	return ListParams{Page: page, PageSize: pageSize}.Values()
}
