package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/archive"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/service"
)

// archiveStub serves a tiny archive and counts requests per path
type archiveStub struct {
	mu   sync.Mutex
	hits map[string]int
	logs []domain.LogEntry
}

func (a *archiveStub) count(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

func (a *archiveStub) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, v := range a.hits {
		n += v
	}
	return n
}

func (a *archiveStub) reported() []domain.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.LogEntry(nil), a.logs...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pageOf(r *http.Request, items any, total int) map[string]any {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return map[string]any{
		"items":     items,
		"total":     total,
		"page":      max(page, 1),
		"page_size": size,
	}
}

func (a *archiveStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.hits[r.URL.Path]++
	a.mu.Unlock()

	switch r.URL.Path {
	case "/api/v1/health":
		writeJSON(w, map[string]any{"status": "healthy", "version": "1.2.0", "database": "connected"})
	case "/api/v1/logs":
		var e domain.LogEntry
		_ = json.NewDecoder(r.Body).Decode(&e)
		a.mu.Lock()
		a.logs = append(a.logs, e)
		a.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	case "/api/v1/metadata":
		writeJSON(w, map[string]any{
			"consoles": []map[string]any{{"consoleid": 4, "description": "Super Nintendo"}},
			"genres":   []map[string]any{{"genreid": 2, "description": "RPG"}},
		})
	case "/api/v1/games":
		writeJSON(w, pageOf(r, []map[string]any{
			{"gamekey": 7, "gametitle": "EarthBound", "platform_name": "SNES", "hackexist": 1},
			{"gamekey": 8, "gametitle": "Mother 3", "platform_name": "GBA", "transexist": 1},
		}, 120))
	case "/api/v1/hacks":
		writeJSON(w, pageOf(r, []map[string]any{
			{"hackkey": 42, "hacktitle": "EarthBound Beginnings Deluxe", "game_title": "Mother"},
		}, 1))
	case "/api/v1/translations":
		writeJSON(w, pageOf(r, []map[string]any{}, 0))
	case "/api/v1/games/7":
		writeJSON(w, map[string]any{"gamekey": 7, "gametitle": "EarthBound", "platform_name": "SNES", "hack_count": 1})
	case "/api/v1/games/7/hacks":
		writeJSON(w, pageOf(r, []map[string]any{
			{"hackkey": 42, "hacktitle": "EarthBound Beginnings Deluxe"},
		}, 1))
	case "/api/v1/games/7/translations":
		writeJSON(w, pageOf(r, []map[string]any{}, 0))
	default:
		http.NotFound(w, r)
	}
}

// newTestEnv wires the real fetch hooks against an archive stub
func newTestEnv(t *testing.T) (*Env, *archiveStub) {
	t.Helper()

	stub := &archiveStub{hits: make(map[string]int)}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	logger := adapter.NullLogger()
	client := archive.NewClient(srv.URL+"/api/v1", logger, archive.WithTimeout(2*time.Second))
	services := service.New(client, cache.New(logger), nil, service.Options{StaleAfter: time.Minute}, logger)
	agg := search.NewAggregator(services.Games, services.Hacks, services.Translations, search.Options{}, logger)

	env := (&Env{
		Services: services,
		Search:   agg,
		Reporter: client,
		Timeout:  2 * time.Second,
		Logger:   logger,
	}).withDefaults()
	return env, stub
}

// drain runs cmd, expanding batches, and collects every message produced
// within a short window. Long ticks such as the health timer are dropped.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	var (
		mu   sync.Mutex
		msgs []tea.Msg
		wg   sync.WaitGroup
	)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		done := make(chan tea.Msg, 1)
		go func() { done <- c() }()

		select {
		case msg := <-done:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					wg.Add(1)
					go func(sub tea.Cmd) {
						defer wg.Done()
						run(sub)
					}(sub)
				}
				return
			}
			if msg != nil {
				mu.Lock()
				msgs = append(msgs, msg)
				mu.Unlock()
			}
		case <-time.After(time.Second):
		}
	}
	run(cmd)
	wg.Wait()
	return msgs
}

// only returns the messages of type T
func only[T tea.Msg](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// settle feeds every message produced by cmd back into update until
// nothing new arrives
func settle(t *testing.T, cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 20; i++ {
		next := queue[0]
		queue = queue[1:]
		for _, msg := range drain(t, next) {
			if c := update(msg); c != nil {
				queue = append(queue, c)
			}
		}
	}
}
