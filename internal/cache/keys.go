package cache

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Key builds a cache key from a resource kind, optional path parts, and a
// parameter set. url.Values.Encode sorts by key, so the same parameters in
// any insertion order produce the same key.
func Key(kind string, params url.Values, parts ...any) string {
	var b strings.Builder
	b.WriteString(kind)
	for _, p := range parts {
		b.WriteByte('/')
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(strconv.Itoa(v))
		default:
			b.WriteString(url.PathEscape(fmt.Sprint(v)))
		}
	}
	if enc := params.Encode(); enc != "" {
		b.WriteByte('?')
		b.WriteString(enc)
	}
	return b.String()
}
