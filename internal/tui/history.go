package tui

import "github.com/mmcdole/romshelf/internal/querystate"

// maxHistory bounds how many locations back navigation remembers
const maxHistory = 50

// historyEntry is a visited location and the selection it had when left
type historyEntry struct {
	Location querystate.Location
	Cursor   int
}

// History is the stack of visited locations behind the current one. Each
// entry keeps the cursor so going back restores the selection.
type History struct {
	entries []historyEntry
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{}
}

// Len returns the number of locations that can be gone back to
func (h *History) Len() int {
	return len(h.entries)
}

// CanGoBack reports whether there is a previous location
func (h *History) CanGoBack() bool {
	return len(h.entries) > 0
}

// Push records the location being left and its cursor. The oldest entry
// is dropped once the stack is full.
func (h *History) Push(loc querystate.Location, cursor int) {
	h.entries = append(h.entries, historyEntry{Location: loc, Cursor: cursor})
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
}

// Pop removes and returns the previous location with its saved cursor
func (h *History) Pop() (querystate.Location, int, bool) {
	if len(h.entries) == 0 {
		return querystate.Location{}, 0, false
	}
	top := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return top.Location, top.Cursor, true
}

// Clear forgets every entry
func (h *History) Clear() {
	h.entries = nil
}
