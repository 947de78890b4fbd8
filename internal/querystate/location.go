package querystate

import (
	"net/url"
	"strings"
)

// Location is a route path plus its query parameters, the terminal
// counterpart of a browser address bar
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation parses "/games?platform=3&page=2". Malformed query pairs are
// dropped; the result always has a non-nil Query and a path starting with "/".
func ParseLocation(raw string) Location {
	path, rawQuery, _ := strings.Cut(raw, "?")
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil && query == nil {
		query = url.Values{}
	}
	return Location{Path: path, Query: query}
}

// String returns the canonical form: path, then query keys sorted
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	encoded := l.Query.Encode()
	if encoded == "" {
		return l.Path
	}
	return l.Path + "?" + encoded
}

// Segments returns the non-empty path segments
func (l Location) Segments() []string {
	var segs []string
	for _, s := range strings.Split(l.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// WithQuery returns a copy of l with the given query
func (l Location) WithQuery(q url.Values) Location {
	return Location{Path: l.Path, Query: q}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
