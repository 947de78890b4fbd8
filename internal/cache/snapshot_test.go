package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func sampleMetadata() domain.Metadata {
	return domain.Metadata{
		Consoles: []domain.Console{{ID: 4, Description: "Super Nintendo", Abbreviation: "SNES"}},
		Genres:   []domain.Genre{{ID: 2, Description: "RPG"}},
	}
}

func TestSnapshotStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := cache.NewSnapshotStore(dir, "http://archive.local/api/v1")
	require.NoError(t, err)
	_, ok := s.LoadMetadata()
	assert.False(t, ok)

	require.NoError(t, s.SaveMetadata(sampleMetadata()))
	require.NoError(t, s.Close())

	s, err = cache.NewSnapshotStore(dir, "http://archive.local/api/v1/")
	require.NoError(t, err)
	defer s.Close()

	m, ok := s.LoadMetadata()
	require.True(t, ok)
	assert.Equal(t, sampleMetadata(), m)
}

func TestSnapshotStore_SeparatesServers(t *testing.T) {
	dir := t.TempDir()

	a, err := cache.NewSnapshotStore(dir, "http://one.local")
	require.NoError(t, err)
	require.NoError(t, a.SaveMetadata(sampleMetadata()))
	require.NoError(t, a.Close())

	b, err := cache.NewSnapshotStore(dir, "http://two.local")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.LoadMetadata()
	assert.False(t, ok)
}

func TestSnapshotStore_Clear(t *testing.T) {
	s, err := cache.NewSnapshotStore(t.TempDir(), "http://one.local")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveMetadata(sampleMetadata()))
	require.NoError(t, s.Clear())

	_, ok := s.LoadMetadata()
	assert.False(t, ok)
}

func TestSnapshotStore_MemoryOnly(t *testing.T) {
	s, err := cache.NewSnapshotStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveMetadata(sampleMetadata()))
	m, ok := s.LoadMetadata()
	require.True(t, ok)
	assert.Len(t, m.Consoles, 1)
	assert.NoError(t, s.Close())
}

func TestSnapshotStore_IgnoresOtherFormats(t *testing.T) {
	dir := t.TempDir()

	s, err := cache.NewSnapshotStore(dir, "http://one.local")
	require.NoError(t, err)
	require.NoError(t, s.SaveMetadata(sampleMetadata()))
	require.NoError(t, s.Close())

	files, err := filepath.Glob(filepath.Join(dir, "*.db"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	db, err := bolt.Open(files[0], 0600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("lookups")).Put([]byte("metadata"), []byte(`{"format":99,"metadata":{}}`))
	}))
	require.NoError(t, db.Close())

	s, err = cache.NewSnapshotStore(dir, "http://one.local")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.LoadMetadata()
	assert.False(t, ok)
}
