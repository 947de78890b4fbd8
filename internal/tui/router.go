package tui

import (
	"strconv"

	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
)

// RouteKind identifies the page a location renders
type RouteKind int

const (
	RouteNotFound RouteKind = iota
	RouteDashboard
	RouteList
	RouteDetail
)

// Route is a parsed location path
type Route struct {
	Kind     RouteKind
	Resource domain.Kind
	ID       int // 0 when the id segment is not a positive integer
}

// browsable lists the resource kinds with list and detail pages
var browsable = map[domain.Kind]bool{
	domain.KindGame:        true,
	domain.KindHack:        true,
	domain.KindTranslation: true,
	domain.KindUtility:     true,
	domain.KindDocument:    true,
	domain.KindHomebrew:    true,
}

// MatchRoute maps a location to the page that renders it
func MatchRoute(loc querystate.Location) Route {
	segs := loc.Segments()
	switch len(segs) {
	case 0:
		return Route{Kind: RouteDashboard}
	case 1:
		kind := domain.Kind(segs[0])
		if browsable[kind] {
			return Route{Kind: RouteList, Resource: kind}
		}
	case 2:
		kind := domain.Kind(segs[0])
		if browsable[kind] {
			id, err := strconv.Atoi(segs[1])
			if err != nil || id < 0 {
				id = 0
			}
			return Route{Kind: RouteDetail, Resource: kind, ID: id}
		}
	}
	return Route{Kind: RouteNotFound}
}
