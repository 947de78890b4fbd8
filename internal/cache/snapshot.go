package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/romshelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketLookups = []byte("lookups")

const (
	keyMetadata = "metadata"

	// snapshotFormat is bumped whenever the stored record changes shape.
	// Records written under another format are ignored.
	snapshotFormat = 1
)

// snapshotRecord is what lands in the lookups bucket
type snapshotRecord struct {
	Format   int             `json:"format"`
	SavedAt  time.Time       `json:"saved_at"`
	Metadata domain.Metadata `json:"metadata"`
}

// SnapshotStore keeps the last good lookup tables in a bbolt file, one file
// per archive. Without a directory it only remembers them for the session.
type SnapshotStore struct {
	db *bolt.DB

	mu  sync.Mutex
	mem *snapshotRecord // used when db is nil
}

// NewSnapshotStore opens (or creates) the snapshot for serverURL under
// baseDir. An empty baseDir yields a memory-only store.
func NewSnapshotStore(baseDir, serverURL string) (*SnapshotStore, error) {
	if baseDir == "" {
		return &SnapshotStore{}, nil
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(baseDir, snapshotFile(serverURL))
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLookups)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SnapshotStore{db: db}, nil
}

// snapshotFile names the database for an archive. Case and trailing
// slashes do not produce a new file.
func snapshotFile(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(strings.TrimSpace(serverURL)), "/")
	if normalized == "" {
		return "lookups.db"
	}
	sum := sha256.Sum256([]byte(normalized))
	return "lookups-" + hex.EncodeToString(sum[:6]) + ".db"
}

// Close releases the database
func (s *SnapshotStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadMetadata returns the last saved lookup tables
func (s *SnapshotStore) LoadMetadata() (domain.Metadata, bool) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.mem == nil {
			return domain.Metadata{}, false
		}
		return s.mem.Metadata, true
	}

	var rec snapshotRecord
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLookups).Get([]byte(keyMetadata))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction; Unmarshal copies
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		found = rec.Format == snapshotFormat
		return nil
	})
	if err != nil || !found {
		return domain.Metadata{}, false
	}
	return rec.Metadata, true
}

// SaveMetadata replaces the saved lookup tables
func (s *SnapshotStore) SaveMetadata(m domain.Metadata) error {
	rec := snapshotRecord{Format: snapshotFormat, SavedAt: time.Now().UTC(), Metadata: m}

	if s.db == nil {
		s.mu.Lock()
		s.mem = &rec
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLookups).Put([]byte(keyMetadata), data)
	})
}

// Clear removes the saved lookup tables
func (s *SnapshotStore) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		s.mem = nil
		s.mu.Unlock()
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLookups).Delete([]byte(keyMetadata))
	})
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
