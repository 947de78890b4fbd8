package service

import (
	"net/url"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// Cache key prefixes, one per resource kind. Keys nest under them as
// {kind}?{params}, {kind}/{id} and {kind}/{id}/{sub}?{params}.
const (
	PrefixGames        = string(domain.KindGame)
	PrefixHacks        = string(domain.KindHack)
	PrefixTranslations = string(domain.KindTranslation)
	PrefixUtilities    = string(domain.KindUtility)
	PrefixDocuments    = string(domain.KindDocument)
	PrefixHomebrew     = string(domain.KindHomebrew)
	PrefixMetadata     = string(domain.KindMetadata)
	PrefixHealth       = string(domain.KindHealth)
)

// ListKey is the cache key of one list query
func ListKey(kind domain.Kind, params domain.ListParams) string {
	return cache.Key(string(kind), params.Values())
}

// DetailKey is the cache key of a single record
func DetailKey(kind domain.Kind, id int) string {
	return cache.Key(string(kind), nil, id)
}

// SubKey is the cache key of a record's sub-resource
func SubKey(kind domain.Kind, id int, sub string, params url.Values) string {
	return cache.Key(string(kind), params, id, sub)
}

// LookupKey is the cache key of a lookup table; the empty lookup is the
// combined metadata document
func LookupKey(l domain.Lookup) string {
	if l == "" {
		return PrefixMetadata
	}
	return cache.Key(PrefixMetadata, nil, string(l))
}

// RecordPrefixes returns the prefixes of record data, leaving lookups and
// health in place
func RecordPrefixes() []string {
	return []string{PrefixGames, PrefixHacks, PrefixTranslations, PrefixUtilities, PrefixDocuments, PrefixHomebrew}
}
