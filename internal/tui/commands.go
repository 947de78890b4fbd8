package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/querystate"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/service"
)

// Default timings used when Env leaves them unset
const (
	DefaultTimeout        = 15 * time.Second
	DefaultHealthInterval = 30 * time.Second
)

// Env is what pages need from the outside world: the fetch hooks, the
// palette aggregator and the knobs from configuration
type Env struct {
	Services *service.Services
	Search   *search.Aggregator

	// Reporter receives recovered panics; nil when remote logging already
	// forwards error records
	Reporter domain.LogReporter

	// SaveSession persists theme and sidebar changes; may be nil
	SaveSession func(Session) error

	Timeout        time.Duration
	Debounce       time.Duration
	HealthInterval time.Duration
	MinQuery       int // shortest palette query that is sent
	Logger         *slog.Logger
}

func (e *Env) withDefaults() *Env {
	out := *e
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Debounce < 0 {
		out.Debounce = 0
	}
	if out.HealthInterval <= 0 {
		out.HealthInterval = DefaultHealthInterval
	}
	if out.MinQuery < 1 {
		out.MinQuery = search.DefaultMinRunes
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// fetch runs fn off the event loop with the request timeout
func (e *Env) fetch(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := e.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

// Command factories for async operations

// LoadListCmd loads one page of a list route
func LoadListCmd(env *Env, spec ListSpec, params domain.ListParams, key string) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		return ListLoadedMsg{Key: key, Result: spec.fetch(ctx, env.Services, params)}
	})
}

// LoadDetailCmd loads a detail record
func LoadDetailCmd(env *Env, kind domain.Kind, id int, key string) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		return DetailLoadedMsg{Key: key, Result: loadDetail(ctx, env.Services, kind, id)}
	})
}

// LoadGameHacksCmd loads one page of a game's hacks
func LoadGameHacksCmd(env *Env, id, page, pageSize int, key string) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		r := env.Services.Games.Hacks(ctx, id, page, pageSize)
		return SubListLoadedMsg{Key: key, Result: toRows(r, hackCells)}
	})
}

// LoadGameTranslationsCmd loads one page of a game's translations
func LoadGameTranslationsCmd(env *Env, id, page, pageSize int, key string) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		r := env.Services.Games.Translations(ctx, id, page, pageSize)
		return SubListLoadedMsg{Key: key, Result: toRows(r, translationCells)}
	})
}

// LoadImagesCmd loads the screenshots of a hack or translation
func LoadImagesCmd(env *Env, kind domain.Kind, id int, key string) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		var r cache.Result[[]domain.Image]
		switch kind {
		case domain.KindHack:
			r = env.Services.Hacks.Images(ctx, id)
		case domain.KindTranslation:
			r = env.Services.Translations.Images(ctx, id)
		default:
			r = cache.Disabled[[]domain.Image]()
		}
		return ImagesLoadedMsg{Key: key, Result: r}
	})
}

// LoadMetadataCmd loads the lookup tables
func LoadMetadataCmd(env *Env) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		return MetadataLoadedMsg{Result: env.Services.Metadata.All(ctx)}
	})
}

// CheckHealthCmd probes the archive
func CheckHealthCmd(env *Env) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		return HealthLoadedMsg{Result: env.Services.Health.Check(ctx)}
	})
}

// HealthTickCmd schedules the next health probe
func HealthTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return HealthTickMsg{}
	})
}

// LoadTotalCmd counts the records of a kind with a one-item list query
func LoadTotalCmd(env *Env, kind domain.Kind) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		params := domain.ListParams{PageSize: 1}
		var r cache.Result[int]
		switch kind {
		case domain.KindGame:
			r = mapResult(env.Services.Games.List(ctx, params), pageTotal[domain.Game])
		case domain.KindHack:
			r = mapResult(env.Services.Hacks.List(ctx, params), pageTotal[domain.Hack])
		case domain.KindTranslation:
			r = mapResult(env.Services.Translations.List(ctx, params), pageTotal[domain.Translation])
		case domain.KindUtility:
			r = mapResult(env.Services.Utilities.List(ctx, params), pageTotal[domain.Utility])
		case domain.KindDocument:
			r = mapResult(env.Services.Documents.List(ctx, params), pageTotal[domain.Document])
		case domain.KindHomebrew:
			r = mapResult(env.Services.Homebrew.List(ctx, params), pageTotal[domain.Homebrew])
		default:
			r = cache.Disabled[int]()
		}
		return TotalLoadedMsg{Kind: kind, Result: r}
	})
}

func pageTotal[T any](p domain.Page[T]) int { return p.Total }

// SearchSlotCmd runs one palette group for generation gen
func SearchSlotCmd(env *Env, gen int, query string, slot search.Slot) tea.Cmd {
	return env.fetch(func(ctx context.Context) tea.Msg {
		return SearchSlotMsg{Gen: gen, Result: env.Search.Fetch(ctx, query, slot)}
	})
}

// ReportLogCmd ships an entry to the archive log endpoint. Failures are
// logged locally and otherwise ignored.
func ReportLogCmd(env *Env, entry domain.LogEntry) tea.Cmd {
	if env.Reporter == nil {
		return nil
	}
	reporter, logger := env.Reporter, env.Logger
	return env.fetch(func(ctx context.Context) tea.Msg {
		if err := reporter.ReportLog(ctx, entry); err != nil {
			logger.Debug("log report failed", "error", err)
		}
		return nil
	})
}

// SaveSessionCmd persists the session
func SaveSessionCmd(env *Env, s Session) tea.Cmd {
	if env.SaveSession == nil {
		return nil
	}
	save := env.SaveSession
	return func() tea.Msg {
		return SessionSavedMsg{Err: save(s)}
	}
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

// navigateCmd emits a NavigateMsg
func navigateCmd(loc querystate.Location) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Location: loc} }
}

// navigatePathCmd emits a NavigateMsg for a route string
func navigatePathCmd(raw string) tea.Cmd {
	return navigateCmd(querystate.ParseLocation(raw))
}

func backCmd() tea.Msg { return BackMsg{} }
