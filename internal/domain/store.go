package domain

// SnapshotStore persists lookup data between sessions so the client can still
// label facets when the archive is unreachable.
type SnapshotStore interface {
	// LoadMetadata returns the last saved metadata and whether one exists
	LoadMetadata() (Metadata, bool)

	// SaveMetadata replaces the saved metadata
	SaveMetadata(m Metadata) error

	// Clear removes all saved data
	Clear() error

	// Close releases the underlying storage
	Close() error
}
