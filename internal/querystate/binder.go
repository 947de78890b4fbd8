package querystate

import (
	"fmt"
	"net/url"
	"strconv"
)

// Defaults maps filter keys to their default values. Supported value types
// are string, int and bool.
type Defaults map[string]any

// State is the effective filter state: every declared key resolved from the
// query or falling back to its default
type State map[string]any

// String returns a string-typed key, or "" when absent or of another type
func (s State) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Int returns an int-typed key, or 0 when absent or of another type
func (s State) Int(key string) int {
	v, _ := s[key].(int)
	return v
}

// Bool returns a bool-typed key, or false when absent or of another type
func (s State) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// Resolve computes the effective state for query. It never fails: values that
// cannot be coerced to the default's type silently fall back to the default.
func Resolve(query url.Values, defaults Defaults) State {
	state := make(State, len(defaults))
	for key, def := range defaults {
		raw, present := first(query, key)
		if !present {
			state[key] = def
			continue
		}
		state[key] = coerce(raw, def)
	}
	return state
}

func first(query url.Values, key string) (string, bool) {
	vals, ok := query[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func coerce(raw string, def any) any {
	switch d := def.(type) {
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return d
		}
		return n
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return d
		}
		return b
	case string:
		return raw
	default:
		return def
	}
}

// Apply returns a new query with updates merged into query. An update whose
// value is nil, the empty string, or equal to the key's declared default
// removes the key; any other value is stored in its string form. Keys not
// named in updates are kept as they are.
func Apply(query url.Values, defaults Defaults, updates map[string]any) url.Values {
	next := cloneValues(query)
	for key, value := range updates {
		if isUnset(value, defaults[key]) {
			next.Del(key)
			continue
		}
		next.Set(key, format(value))
	}
	return next
}

func isUnset(value, def any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok && s == "" {
		return true
	}
	return def != nil && format(value) == format(def)
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Binder binds a set of defaults to a location. Every Update produces exactly
// one navigation carrying the combined change.
type Binder struct {
	defaults Defaults
	location Location
	navigate func(Location)
}

// NewBinder creates a binder for loc. navigate receives every new location;
// it may be nil.
func NewBinder(loc Location, defaults Defaults, navigate func(Location)) *Binder {
	if loc.Query == nil {
		loc.Query = url.Values{}
	}
	return &Binder{defaults: defaults, location: loc, navigate: navigate}
}

// State resolves the current location against the defaults
func (b *Binder) State() State {
	return Resolve(b.location.Query, b.defaults)
}

// Location returns the current location
func (b *Binder) Location() Location {
	return b.location
}

// Defaults returns the declared defaults
func (b *Binder) Defaults() Defaults {
	return b.defaults
}

// Update applies updates as a single navigation and returns the new location
func (b *Binder) Update(updates map[string]any) Location {
	b.location = b.location.WithQuery(Apply(b.location.Query, b.defaults, updates))
	if b.navigate != nil {
		b.navigate(b.location)
	}
	return b.location
}

// Reset drops every declared key, restoring all defaults in one navigation
func (b *Binder) Reset() Location {
	updates := make(map[string]any, len(b.defaults))
	for key := range b.defaults {
		updates[key] = nil
	}
	return b.Update(updates)
}

// Active reports how many declared keys differ from their defaults,
// ignoring the given keys (typically page)
func (b *Binder) Active(ignore ...string) int {
	skip := make(map[string]bool, len(ignore))
	for _, k := range ignore {
		skip[k] = true
	}
	n := 0
	state := b.State()
	for key, def := range b.defaults {
		if skip[key] {
			continue
		}
		if format(state[key]) != format(def) {
			n++
		}
	}
	return n
}
