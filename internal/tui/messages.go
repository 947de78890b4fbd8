package tui

import (
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/tui/components"
)

// Message types for the TUI. Fetch results carry the cache key they were
// requested under so a page can drop answers it no longer waits for.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// NavigateMsg moves to a new location, pushing the current one on history
type NavigateMsg struct {
	Location querystate.Location
}

// BackMsg returns to the previous location
type BackMsg struct{}

// rowPage is one page of a list converted to table rows
type rowPage struct {
	Rows       []components.Row
	Total      int
	Page       int
	TotalPages int
}

// ListLoadedMsg carries one page of a list route
type ListLoadedMsg struct {
	Key    string
	Result cache.Result[rowPage]
}

// SubListLoadedMsg carries one page of a detail page sub-list
type SubListLoadedMsg struct {
	Key    string
	Result cache.Result[rowPage]
}

// detailField is one labelled value on a detail page
type detailField struct {
	Label string
	Value string
}

// detailDoc is a detail record flattened for display
type detailDoc struct {
	Title       string
	Subtitle    string
	Fields      []detailField
	Description string

	// Links to related records, e.g. the game a hack patches
	GameID int
}

// DetailLoadedMsg carries a detail record
type DetailLoadedMsg struct {
	Key    string
	Result cache.Result[detailDoc]
}

// ImagesLoadedMsg carries the screenshots of a hack or translation
type ImagesLoadedMsg struct {
	Key    string
	Result cache.Result[[]domain.Image]
}

// MetadataLoadedMsg carries the lookup tables
type MetadataLoadedMsg struct {
	Result cache.Result[domain.Metadata]
}

// HealthLoadedMsg carries the result of a health probe
type HealthLoadedMsg struct {
	Result cache.Result[domain.Health]
}

// HealthTickMsg triggers the next health probe
type HealthTickMsg struct{}

// TotalLoadedMsg carries the record count of one kind for the dashboard
type TotalLoadedMsg struct {
	Kind   domain.Kind
	Result cache.Result[int]
}

// SearchSlotMsg carries one palette group's answer for search generation Gen
type SearchSlotMsg struct {
	Gen    int
	Result search.SlotResult
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	ID int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// SessionSavedMsg reports the outcome of persisting the session
type SessionSavedMsg struct {
	Err error
}
