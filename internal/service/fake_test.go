package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/mmcdole/romshelf/internal/domain"
)

// fakeArchive is an in-memory ArchiveSource that records every call
type fakeArchive struct {
	mu    sync.Mutex
	calls map[string]int
	fail  error

	games    []domain.Game
	metadata domain.Metadata
	health   domain.Health
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{
		calls: make(map[string]int),
		games: []domain.Game{
			{GameKey: 1, Title: "EarthBound", PlatformName: "SNES"},
			{GameKey: 2, Title: "Mother 3", PlatformName: "GBA"},
		},
		metadata: domain.Metadata{
			Consoles: []domain.Console{{ID: 4, Description: "Super Nintendo"}},
			Genres:   []domain.Genre{{ID: 2, Description: "RPG"}},
		},
		health: domain.Health{Status: "healthy", Version: "1.0.0", Database: "connected"},
	}
}

func (f *fakeArchive) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.fail
}

func (f *fakeArchive) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeArchive) setFail(err error) {
	f.mu.Lock()
	f.fail = err
	f.mu.Unlock()
}

func (f *fakeArchive) ListGames(_ context.Context, p domain.ListParams) (domain.Page[domain.Game], error) {
	if err := f.record("ListGames"); err != nil {
		return domain.Page[domain.Game]{}, err
	}
	return domain.Page[domain.Game]{Items: f.games, Total: len(f.games), Page: max(p.Page, 1), PageSize: 50}.Normalize(), nil
}

func (f *fakeArchive) GetGame(_ context.Context, id int) (domain.GameDetail, error) {
	if err := f.record("GetGame"); err != nil {
		return domain.GameDetail{}, err
	}
	for _, g := range f.games {
		if g.GameKey == id {
			return domain.GameDetail{Game: g, HackCount: 3}, nil
		}
	}
	return domain.GameDetail{}, domain.ErrNotFound
}

func (f *fakeArchive) GameHacks(_ context.Context, id, page, size int) (domain.Page[domain.Hack], error) {
	if err := f.record("GameHacks"); err != nil {
		return domain.Page[domain.Hack]{}, err
	}
	return domain.Page[domain.Hack]{Items: []domain.Hack{{HackKey: 10, GameKey: id}}, Total: 1, Page: page, PageSize: size}.Normalize(), nil
}

func (f *fakeArchive) GameTranslations(_ context.Context, id, page, size int) (domain.Page[domain.Translation], error) {
	if err := f.record("GameTranslations"); err != nil {
		return domain.Page[domain.Translation]{}, err
	}
	return domain.Page[domain.Translation]{Page: page, PageSize: size}.Normalize(), nil
}

func (f *fakeArchive) ListHacks(context.Context, domain.ListParams) (domain.Page[domain.Hack], error) {
	return domain.Page[domain.Hack]{}, f.record("ListHacks")
}

func (f *fakeArchive) GetHack(_ context.Context, id int) (domain.HackDetail, error) {
	return domain.HackDetail{Hack: domain.Hack{HackKey: id}}, f.record("GetHack")
}

func (f *fakeArchive) HackImages(context.Context, int) ([]domain.Image, error) {
	return []domain.Image{{ImageID: 1, Caption: "Title screen"}}, f.record("HackImages")
}

func (f *fakeArchive) ListTranslations(context.Context, domain.ListParams) (domain.Page[domain.Translation], error) {
	return domain.Page[domain.Translation]{}, f.record("ListTranslations")
}

func (f *fakeArchive) GetTranslation(_ context.Context, id int) (domain.TranslationDetail, error) {
	return domain.TranslationDetail{Translation: domain.Translation{TransKey: id}}, f.record("GetTranslation")
}

func (f *fakeArchive) TranslationImages(context.Context, int) ([]domain.Image, error) {
	return nil, f.record("TranslationImages")
}

func (f *fakeArchive) ListUtilities(context.Context, domain.ListParams) (domain.Page[domain.Utility], error) {
	return domain.Page[domain.Utility]{}, f.record("ListUtilities")
}

func (f *fakeArchive) GetUtility(_ context.Context, id int) (domain.UtilityDetail, error) {
	return domain.UtilityDetail{Utility: domain.Utility{UtilKey: id}}, f.record("GetUtility")
}

func (f *fakeArchive) ListDocuments(context.Context, domain.ListParams) (domain.Page[domain.Document], error) {
	return domain.Page[domain.Document]{}, f.record("ListDocuments")
}

func (f *fakeArchive) GetDocument(_ context.Context, id int) (domain.DocumentDetail, error) {
	return domain.DocumentDetail{Document: domain.Document{DocKey: id}}, f.record("GetDocument")
}

func (f *fakeArchive) ListHomebrew(context.Context, domain.ListParams) (domain.Page[domain.Homebrew], error) {
	return domain.Page[domain.Homebrew]{}, f.record("ListHomebrew")
}

func (f *fakeArchive) GetHomebrew(_ context.Context, id int) (domain.HomebrewDetail, error) {
	return domain.HomebrewDetail{Homebrew: domain.Homebrew{HomebrewKey: id}}, f.record("GetHomebrew")
}

func (f *fakeArchive) GetMetadata(context.Context) (domain.Metadata, error) {
	if err := f.record("GetMetadata"); err != nil {
		return domain.Metadata{}, err
	}
	return f.metadata, nil
}

func (f *fakeArchive) GetLookup(_ context.Context, l domain.Lookup) (domain.Metadata, error) {
	if err := f.record("GetLookup:" + string(l)); err != nil {
		return domain.Metadata{}, err
	}
	switch l {
	case domain.LookupConsoles:
		return domain.Metadata{Consoles: f.metadata.Consoles}, nil
	case domain.LookupGenres:
		return domain.Metadata{Genres: f.metadata.Genres}, nil
	}
	return domain.Metadata{}, errors.New("unknown lookup")
}

func (f *fakeArchive) Health(context.Context) (domain.Health, error) {
	if err := f.record("Health"); err != nil {
		return domain.Health{}, err
	}
	return f.health, nil
}

func (f *fakeArchive) ReportLog(context.Context, domain.LogEntry) error {
	return f.record("ReportLog")
}

var _ domain.ArchiveSource = (*fakeArchive)(nil)
