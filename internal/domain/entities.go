package domain

import "fmt"

// Kind identifies a resource collection of the archive
type Kind string

const (
	KindGame        Kind = "games"
	KindHack        Kind = "hacks"
	KindTranslation Kind = "translations"
	KindUtility     Kind = "utilities"
	KindDocument    Kind = "documents"
	KindHomebrew    Kind = "homebrew"
	KindMetadata    Kind = "metadata"
	KindHealth      Kind = "health"
)

// Label returns the display name of a resource kind
func (k Kind) Label() string {
	switch k {
	case KindGame:
		return "Games"
	case KindHack:
		return "ROM Hacks"
	case KindTranslation:
		return "Translations"
	case KindUtility:
		return "Utilities"
	case KindDocument:
		return "Documents"
	case KindHomebrew:
		return "Homebrew"
	case KindMetadata:
		return "Metadata"
	case KindHealth:
		return "Health"
	default:
		return string(k)
	}
}

// DetailRoute returns the route of a single record of this kind
func (k Kind) DetailRoute(id int) string {
	return fmt.Sprintf("/%s/%d", k, id)
}

// Game is a game entry as returned by list endpoints
type Game struct {
	GameKey       int    `json:"gamekey"`
	Title         string `json:"gametitle"`
	JapaneseTitle string `json:"japtitle"`
	Publisher     string `json:"publisher"`
	PlatformID    int    `json:"platformid"`
	GenreID       int    `json:"genreid"`
	PlatformName  string `json:"platform_name"`
	GenreName     string `json:"genre_name"`
	TransExist    int    `json:"transexist"`
	HackExist     int    `json:"hackexist"`
	UtilExist     int    `json:"utilexist"`
	DocExist      int    `json:"docexist"`
}

// HasHacks reports whether the archive lists any hack for the game
func (g Game) HasHacks() bool { return g.HackExist > 0 }

// HasTranslations reports whether the archive lists any translation for the game
func (g Game) HasTranslations() bool { return g.TransExist > 0 }

// GameDetail is the full game record
type GameDetail struct {
	Game
	HackCount        int `json:"hack_count"`
	TranslationCount int `json:"translation_count"`
	UtilityCount     int `json:"utility_count"`
	DocumentCount    int `json:"document_count"`
}

// Hack is a ROM hack entry as returned by list endpoints
type Hack struct {
	HackKey      int    `json:"hackkey"`
	Title        string `json:"hacktitle"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	GameKey      int    `json:"gamekey"`
	ConsoleKey   int    `json:"consolekey"`
	Category     int    `json:"category"`
	GameTitle    string `json:"game_title"`
	ConsoleName  string `json:"console_name"`
	CategoryName string `json:"category_name"`
	Downloads    int    `json:"downloads"`
	ReleaseDate  string `json:"releasedate"`
	Created      string `json:"created"`
	LastModified string `json:"lastmod"`
}

// PatchFile holds the download-related fields shared by hack and translation details
type PatchFile struct {
	Filename   string `json:"filename"`
	Filesize   int64  `json:"filesize"`
	PatchType  string `json:"patchtype"`
	HintsKey   int    `json:"hintskey"`
	PatchHint  string `json:"patch_hint"`
	NoFile     int    `json:"nofile"`
	NoReadme   int    `json:"noreadme"`
	ImageCount int    `json:"image_count"`
}

// HackDetail is the full hack record
type HackDetail struct {
	Hack
	PatchFile
	AuthorKey int `json:"authorkey"`
}

// Image is a screenshot attached to a hack or translation
type Image struct {
	ImageID  int    `json:"imageid"`
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
}

// Translation is a fan translation entry as returned by list endpoints
type Translation struct {
	TransKey     int    `json:"transkey"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	GameKey      int    `json:"gamekey"`
	ConsoleKey   int    `json:"consolekey"`
	Language     int    `json:"language"`
	PatchStatus  int    `json:"patchstatus"`
	GameTitle    string `json:"game_title"`
	ConsoleName  string `json:"console_name"`
	LanguageName string `json:"language_name"`
	StatusName   string `json:"status_name"`
	Downloads    int    `json:"downloads"`
	ReleaseDate  string `json:"releasedate"`
	Created      string `json:"created"`
	LastModified string `json:"lastmod"`
}

// DisplayTitle returns the translated game's title, which translations lack on their own
func (t Translation) DisplayTitle() string {
	if t.GameTitle == "" {
		return "Unknown Game"
	}
	return t.GameTitle
}

// TranslationDetail is the full translation record
type TranslationDetail struct {
	Translation
	PatchFile
	GroupKey int `json:"groupkey"`
}

// Utility is a tool entry as returned by list endpoints
type Utility struct {
	UtilKey      int    `json:"utilkey"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	CategoryKey  int    `json:"categorykey"`
	ConsoleKey   int    `json:"consolekey"`
	GameKey      int    `json:"gamekey"`
	OS           int    `json:"os"`
	CategoryName string `json:"category_name"`
	ConsoleName  string `json:"console_name"`
	GameTitle    string `json:"game_title"`
	OSName       string `json:"os_name"`
	Downloads    int    `json:"downloads"`
	ReleaseDate  int64  `json:"reldate"` // Unix seconds
	Created      string `json:"created"`
	LastModified string `json:"lastmod"`
}

// UtilityDetail is the full utility record
type UtilityDetail struct {
	Utility
	AuthorKey int    `json:"authorkey"`
	License   string `json:"license"`
	Source    string `json:"source"`
	Filename  string `json:"filename"`
	NoFile    int    `json:"nofile"`
}

// Document is a document entry as returned by list endpoints
type Document struct {
	DocKey       int    `json:"dockey"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CategoryKey  int    `json:"categorykey"`
	ConsoleKey   int    `json:"consolekey"`
	GameKey      int    `json:"gamekey"`
	ExpLevel     int    `json:"explevel"`
	CategoryName string `json:"category_name"`
	ConsoleName  string `json:"console_name"`
	GameTitle    string `json:"game_title"`
	SkillLevel   string `json:"skill_level"`
	Downloads    int    `json:"downloads"`
	Created      string `json:"created"`
	LastModified string `json:"lastmod"`
}

// DocumentDetail is the full document record
type DocumentDetail struct {
	Document
	AuthorKey   int    `json:"authorkey"`
	Version     string `json:"version"`
	Filename    string `json:"filename"`
	ReleaseDate int64  `json:"reldate"`
	NoFile      int    `json:"nofile"`
}

// Homebrew is a homebrew entry as returned by list endpoints
type Homebrew struct {
	HomebrewKey  int    `json:"homebrewkey"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	CategoryKey  int    `json:"categorykey"`
	PlatformKey  int    `json:"platformkey"`
	CategoryName string `json:"category_name"`
	PlatformName string `json:"platform_name"`
	Downloads    int    `json:"downloads"`
	ReleaseDate  string `json:"reldate"`
	Created      string `json:"created"`
	LastModified string `json:"lastmod"`
}

// HomebrewDetail is the full homebrew record
type HomebrewDetail struct {
	Homebrew
	AuthorKey   int    `json:"authorkey"`
	Filename    string `json:"filename"`
	TitleScreen string `json:"titlescreen"`
	Readme      string `json:"readme"`
	NoFile      int    `json:"nofile"`
	NoReadme    int    `json:"noreadme"`
}

// Health is the backend health report
type Health struct {
	Status   string `json:"status"` // "healthy" or "degraded"
	Version  string `json:"version"`
	Database string `json:"database"` // "connected", "disconnected" or "error"
}

// Healthy reports whether both API and database are up
func (h Health) Healthy() bool {
	return h.Status == "healthy" && h.Database == "connected"
}
