// Package search runs the command palette query against games, hacks and
// translations at once and shapes the three answers for display.
package search

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Defaults used when Options leaves a field unset
const (
	DefaultMinRunes = 2
	DefaultPageSize = 5
)

// Slot identifies one of the three independent result groups
type Slot int

const (
	SlotGames Slot = iota
	SlotHacks
	SlotTranslations
)

// Slots lists every slot in display order
var Slots = [...]Slot{SlotGames, SlotHacks, SlotTranslations}

// Kind returns the resource kind queried by the slot
func (s Slot) Kind() domain.Kind {
	switch s {
	case SlotHacks:
		return domain.KindHack
	case SlotTranslations:
		return domain.KindTranslation
	default:
		return domain.KindGame
	}
}

// Label returns the group heading
func (s Slot) Label() string { return s.Kind().Label() }

// Suggestion is one palette entry
type Suggestion struct {
	Kind           domain.Kind
	ID             int
	Title          string
	Subtitle       string
	Route          string
	MatchedIndexes []int // Rune positions in Title
}

// SlotResult is the state of one group
type SlotResult struct {
	Slot   Slot
	Status cache.Status
	Items  []Suggestion
	Total  int // Matches on the archive, may exceed len(Items)
	Err    error
}

// Result is the combined state of the three groups for one query
type Result struct {
	Query         string
	NeedMoreInput bool
	Slots         [len(Slots)]SlotResult
}

// Loading reports whether any group is still waiting for its answer
func (r Result) Loading() bool {
	for _, s := range r.Slots {
		if s.Status == cache.StatusLoading {
			return true
		}
	}
	return false
}

// Empty reports whether every group has answered and none found anything
func (r Result) Empty() bool {
	if r.NeedMoreInput {
		return false
	}
	for _, s := range r.Slots {
		switch s.Status {
		case cache.StatusSuccess, cache.StatusError:
			if len(s.Items) > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Set stores the answer of one group
func (r *Result) Set(s SlotResult) {
	r.Slots[s.Slot] = s
}

// Suggestions flattens the groups that have items, in display order
func (r Result) Suggestions() []Suggestion {
	var out []Suggestion
	for _, s := range r.Slots {
		out = append(out, s.Items...)
	}
	return out
}

// GameLister, HackLister and TranslationLister are the list hooks the
// aggregator queries; the service package provides them.
type GameLister interface {
	List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Game]]
}

type HackLister interface {
	List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Hack]]
}

type TranslationLister interface {
	List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Translation]]
}

// Options tune the aggregator
type Options struct {
	MinRunes int
	PageSize int
}

// Aggregator fans one query out to the three list hooks
type Aggregator struct {
	games        GameLister
	hacks        HackLister
	translations TranslationLister
	minRunes     int
	pageSize     int
	logger       *slog.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(games GameLister, hacks HackLister, translations TranslationLister, opts Options, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinRunes < 1 {
		opts.MinRunes = DefaultMinRunes
	}
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	return &Aggregator{
		games:        games,
		hacks:        hacks,
		translations: translations,
		minRunes:     opts.MinRunes,
		pageSize:     opts.PageSize,
		logger:       logger,
	}
}

// Start returns the initial result for query and whether slots should be
// fetched. Short queries need more input and fetch nothing.
func (a *Aggregator) Start(query string) (Result, bool) {
	query = strings.TrimSpace(query)
	res := Result{Query: query}
	if utf8.RuneCountInString(query) < a.minRunes {
		res.NeedMoreInput = true
		for _, s := range Slots {
			res.Slots[s] = SlotResult{Slot: s, Status: cache.StatusIdle}
		}
		return res, false
	}
	for _, s := range Slots {
		res.Slots[s] = SlotResult{Slot: s, Status: cache.StatusLoading}
	}
	return res, true
}

// Fetch queries a single slot. The query is expected to have passed Start.
func (a *Aggregator) Fetch(ctx context.Context, query string, slot Slot) SlotResult {
	query = strings.TrimSpace(query)
	params := domain.ListParams{Query: query, Page: 1, PageSize: a.pageSize}

	var out SlotResult
	switch slot {
	case SlotGames:
		out = collect(slot, query, a.games.List(ctx, params))
	case SlotHacks:
		out = collect(slot, query, a.hacks.List(ctx, params))
	case SlotTranslations:
		out = collect(slot, query, a.translations.List(ctx, params))
	}

	if out.Err != nil {
		a.logger.Debug("search slot failed", "slot", slot.Kind(), "query", query, "error", out.Err)
	}
	return out
}

// Run queries all three slots concurrently and waits for every answer.
// One slot failing does not affect the others.
func (a *Aggregator) Run(ctx context.Context, query string) Result {
	res, ok := a.Start(query)
	if !ok {
		return res
	}

	var g errgroup.Group
	results := make([]SlotResult, len(Slots))
	for i, s := range Slots {
		g.Go(func() error {
			results[i] = a.Fetch(ctx, res.Query, s)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		res.Set(r)
	}
	a.logger.Debug("search complete", "query", res.Query, "empty", res.Empty())
	return res
}

func collect[T domain.Record](slot Slot, query string, r cache.Result[domain.Page[T]]) SlotResult {
	out := SlotResult{Slot: slot, Status: r.Status, Err: r.Err, Total: r.Data.Total}

	items := r.Data.Items
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.GetTitle()
	}

	for _, m := range Rank(query, titles) {
		item := items[m.Index]
		out.Items = append(out.Items, Suggestion{
			Kind:           item.GetKind(),
			ID:             item.GetID(),
			Title:          titles[m.Index],
			Subtitle:       item.GetSubtitle(),
			Route:          item.GetKind().DetailRoute(item.GetID()),
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return out
}
