package domain

import (
	"context"
)

// GameRepository provides access to games and their sub-lists
type GameRepository interface {
	// ListGames returns one page of games matching params
	ListGames(ctx context.Context, params ListParams) (Page[Game], error)

	// GetGame returns the full game record
	GetGame(ctx context.Context, id int) (GameDetail, error)

	// GameHacks returns one page of hacks for a game
	GameHacks(ctx context.Context, id, page, pageSize int) (Page[Hack], error)

	// GameTranslations returns one page of translations for a game
	GameTranslations(ctx context.Context, id, page, pageSize int) (Page[Translation], error)
}

// HackRepository provides access to ROM hacks
type HackRepository interface {
	ListHacks(ctx context.Context, params ListParams) (Page[Hack], error)
	GetHack(ctx context.Context, id int) (HackDetail, error)
	HackImages(ctx context.Context, id int) ([]Image, error)
}

// TranslationRepository provides access to translations
type TranslationRepository interface {
	ListTranslations(ctx context.Context, params ListParams) (Page[Translation], error)
	GetTranslation(ctx context.Context, id int) (TranslationDetail, error)
	TranslationImages(ctx context.Context, id int) ([]Image, error)
}

// UtilityRepository provides access to utilities
type UtilityRepository interface {
	ListUtilities(ctx context.Context, params ListParams) (Page[Utility], error)
	GetUtility(ctx context.Context, id int) (UtilityDetail, error)
}

// DocumentRepository provides access to documents
type DocumentRepository interface {
	ListDocuments(ctx context.Context, params ListParams) (Page[Document], error)
	GetDocument(ctx context.Context, id int) (DocumentDetail, error)
}

// HomebrewRepository provides access to homebrew
type HomebrewRepository interface {
	ListHomebrew(ctx context.Context, params ListParams) (Page[Homebrew], error)
	GetHomebrew(ctx context.Context, id int) (HomebrewDetail, error)
}

// MetadataRepository provides the lookup tables
type MetadataRepository interface {
	// GetMetadata returns every lookup table in one call
	GetMetadata(ctx context.Context) (Metadata, error)

	// GetLookup returns a single lookup table; only the matching field of
	// the returned Metadata is populated
	GetLookup(ctx context.Context, lookup Lookup) (Metadata, error)
}

// HealthRepository probes backend health
type HealthRepository interface {
	Health(ctx context.Context) (Health, error)
}

// LogReporter ships client-side log entries to the backend
type LogReporter interface {
	ReportLog(ctx context.Context, entry LogEntry) error
}

// ArchiveSource is the full read surface of the archive API plus error reporting
type ArchiveSource interface {
	GameRepository
	HackRepository
	TranslationRepository
	UtilityRepository
	DocumentRepository
	HomebrewRepository
	MetadataRepository
	HealthRepository
	LogReporter
}
