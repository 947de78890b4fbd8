package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T, src *fakeArchive, snapshot domain.SnapshotStore) *service.Services {
	t.Helper()
	c := cache.New(adapter.NullLogger())
	return service.New(src, c, snapshot, service.Options{
		StaleAfter:     30 * time.Second,
		HealthInterval: 30 * time.Second,
	}, adapter.NullLogger())
}

func TestGames_ListIsCachedPerParams(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	params := domain.ListParams{Query: "earth", Page: 1, PageSize: 50}
	res := svc.Games.List(ctx, params)
	require.True(t, res.OK())
	assert.Len(t, res.Data.Items, 2)

	// Same params built in a different order share the entry
	again := domain.ListParams{PageSize: 50, Page: 1, Query: "earth"}
	svc.Games.List(ctx, again)
	assert.Equal(t, 1, src.count("ListGames"))

	svc.Games.List(ctx, params.WithFilter(domain.FacetPlatform, 4))
	assert.Equal(t, 2, src.count("ListGames"))
}

func TestDetail_ZeroIDIssuesNoRequest(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	assert.True(t, svc.Games.Detail(ctx, 0).Disabled())
	assert.True(t, svc.Games.Hacks(ctx, 0, 1, 20).Disabled())
	assert.True(t, svc.Hacks.Detail(ctx, -1).Disabled())
	assert.True(t, svc.Hacks.Images(ctx, 0).Disabled())
	assert.True(t, svc.Translations.Images(ctx, 0).Disabled())
	assert.True(t, svc.Utilities.Detail(ctx, 0).Disabled())
	assert.True(t, svc.Documents.Detail(ctx, 0).Disabled())
	assert.True(t, svc.Homebrew.Detail(ctx, 0).Disabled())

	assert.Zero(t, src.count("GetGame"))
	assert.Zero(t, src.count("GameHacks"))
	assert.Zero(t, src.count("GetHack"))
	assert.Zero(t, src.count("HackImages"))
}

func TestGames_DetailNotFound(t *testing.T) {
	svc := newServices(t, newFakeArchive(), nil)
	res := svc.Games.Detail(context.Background(), 99)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, domain.ErrNotFound)
}

func TestGames_SubListsKeyedByPage(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	svc.Games.Hacks(ctx, 1, 1, 20)
	svc.Games.Hacks(ctx, 1, 1, 20)
	svc.Games.Hacks(ctx, 1, 2, 20)
	assert.Equal(t, 2, src.count("GameHacks"))

	res := svc.Games.Translations(ctx, 1, 1, 20)
	require.True(t, res.OK())
	assert.True(t, res.Data.Empty())
}

func TestMetadata_FetchedOncePerSession(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	for range 3 {
		res := svc.Metadata.All(ctx)
		require.True(t, res.OK())
	}
	assert.Equal(t, 1, src.count("GetMetadata"))

	consoles := svc.Metadata.Consoles(ctx)
	require.True(t, consoles.OK())
	assert.Equal(t, "Super Nintendo", consoles.Data[0].Description)
	svc.Metadata.Consoles(ctx)
	assert.Equal(t, 1, src.count("GetLookup:consoles"))

	opts := svc.Metadata.Options(ctx, domain.LookupGenres)
	assert.Equal(t, []domain.Option{{ID: 2, Label: "RPG"}}, opts.Data)

	svc.Reload()
	svc.Metadata.All(ctx)
	assert.Equal(t, 2, src.count("GetMetadata"))
}

func TestMetadata_SnapshotServedWhenOffline(t *testing.T) {
	snapshot, err := cache.NewSnapshotStore(t.TempDir(), "http://archive.local")
	require.NoError(t, err)
	defer snapshot.Close()

	// First session fills the snapshot
	src := newFakeArchive()
	require.True(t, newServices(t, src, snapshot).Metadata.All(context.Background()).OK())

	// Second session cannot reach the archive
	offline := newFakeArchive()
	offline.setFail(domain.ErrServerUnavailable)
	svc := newServices(t, offline, snapshot)

	res := svc.Metadata.All(context.Background())
	assert.True(t, res.Failed())
	assert.True(t, res.Stale)
	assert.ErrorIs(t, res.Err, domain.ErrServerUnavailable)
	assert.Equal(t, src.metadata, res.Data)

	genres := svc.Metadata.Genres(context.Background())
	assert.True(t, genres.Stale)
	assert.Len(t, genres.Data, 1)
}

func TestMetadata_NoSnapshotFailsPlainly(t *testing.T) {
	src := newFakeArchive()
	src.setFail(domain.ErrServerUnavailable)
	svc := newServices(t, src, nil)

	res := svc.Metadata.All(context.Background())
	assert.True(t, res.Failed())
	assert.False(t, res.Stale)
}

func TestHealth_CachedUntilInterval(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	res := svc.Health.Check(ctx)
	require.True(t, res.OK())
	assert.True(t, res.Data.Healthy())
	svc.Health.Check(ctx)
	assert.Equal(t, 1, src.count("Health"))
}

func TestRefresh_KeepsLookups(t *testing.T) {
	src := newFakeArchive()
	svc := newServices(t, src, nil)
	ctx := context.Background()

	svc.Metadata.All(ctx)
	svc.Games.List(ctx, domain.ListParams{Page: 1})
	svc.Games.Detail(ctx, 1)

	assert.Equal(t, 2, svc.Refresh())
	svc.Metadata.All(ctx)
	svc.Games.Detail(ctx, 1)
	assert.Equal(t, 1, src.count("GetMetadata"))
	assert.Equal(t, 2, src.count("GetGame"))
}
