package components

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mmcdole/romshelf/internal/tui/styles"
)

// Ellipsis marks a gap in the slots returned by PageSlots
const Ellipsis = 0

// PageSlots returns the page numbers to show for current out of total:
// every page when there are at most 7, otherwise the first and last page,
// the neighbours of current, and Ellipsis where pages are skipped.
func PageSlots(current, total int) []int {
	if total <= 1 {
		return nil
	}
	if total <= 7 {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}

	out := []int{1}
	if current > 3 {
		out = append(out, Ellipsis)
	}
	for p := max(2, current-1); p <= min(total-1, current+1); p++ {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if current < total-2 {
		out = append(out, Ellipsis)
	}
	if !slices.Contains(out, total) {
		out = append(out, total)
	}
	return out
}

// RenderPagination renders the page bar, or "" when everything fits on one page
func RenderPagination(th styles.Theme, current, total int) string {
	slots := PageSlots(current, total)
	if slots == nil {
		return ""
	}

	arrow := func(s string, enabled bool) string {
		if enabled {
			return th.Accent.Render(s)
		}
		return th.Dim.Render(s)
	}

	parts := []string{arrow("«", current > 1), arrow("‹", current > 1)}
	for _, p := range slots {
		switch {
		case p == Ellipsis:
			parts = append(parts, th.Dim.Render("…"))
		case p == current:
			parts = append(parts, th.Highlight.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, th.Subtitle.Render(strconv.Itoa(p)))
		}
	}
	parts = append(parts, arrow("›", current < total), arrow("»", current < total))

	return strings.Join(parts, " ") + th.Dim.Render(fmt.Sprintf("   page %d of %d", current, total))
}
