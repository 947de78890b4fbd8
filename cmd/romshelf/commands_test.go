package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig creates a config dir whose cache and log live under it
func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`server:
  url: %s
cache:
  dir: %s
logging:
  file: %s
`, serverURL, filepath.Join(dir, "cache"), filepath.Join(dir, "romshelf.log"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newArchive(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "healthy", "version": "1.2.0", "database": "connected"})
	})
	mux.HandleFunc("/api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"items":     []map[string]any{{"gamekey": 7, "gametitle": "EarthBound", "platform_name": "SNES"}},
			"total":     1,
			"page":      1,
			"page_size": 5,
		})
	})
	mux.HandleFunc("/api/v1/hacks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"items": []any{}, "total": 0, "page": 1, "page_size": 5})
	})
	mux.HandleFunc("/api/v1/translations", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestConfigCmd_PrintsEffectiveConfig(t *testing.T) {
	dir := writeConfig(t, "http://archive.test/api/v1")
	t.Setenv("ROMSHELF_UI_THEME", "light")

	out, err := execute(t, "--config", dir, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "url: http://archive.test/api/v1")
	assert.Contains(t, out, "theme: light")
}

func TestCacheClearCmd(t *testing.T) {
	dir := writeConfig(t, "http://archive.test/api/v1")
	cacheDir := filepath.Join(dir, "cache")

	store, err := cache.NewSnapshotStore(cacheDir, "http://archive.test/api/v1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := execute(t, "--config", dir, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared "+cacheDir)
	assert.NoDirExists(t, cacheDir)

	// clearing twice is fine
	_, err = execute(t, "--config", dir, "cache", "clear")
	assert.NoError(t, err)
}

func TestSearchCmd(t *testing.T) {
	srv := newArchive(t)
	dir := writeConfig(t, srv.URL+"/api/v1")

	out, err := execute(t, "--config", dir, "search", "earth")
	require.NoError(t, err)
	assert.Contains(t, out, "EarthBound")
	assert.Contains(t, out, "/games/7")
	assert.Contains(t, out, "no matches")
	assert.Contains(t, out, "search failed")
}

func TestSearchCmd_ShortQuery(t *testing.T) {
	srv := newArchive(t)
	dir := writeConfig(t, srv.URL+"/api/v1")

	_, err := execute(t, "--config", dir, "search", "e")
	assert.ErrorContains(t, err, "at least 2 characters")
}

func TestHealthCmd(t *testing.T) {
	srv := newArchive(t)
	dir := writeConfig(t, srv.URL+"/api/v1")

	out, err := execute(t, "--config", dir, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, "1.2.0")
}

func TestHealthCmd_Unreachable(t *testing.T) {
	srv := newArchive(t)
	url := srv.URL + "/api/v1"
	srv.Close()
	dir := writeConfig(t, url)

	_, err := execute(t, "--config", dir, "health")
	assert.ErrorContains(t, err, "unreachable")
}

func TestRootCmd_RequiresTerminal(t *testing.T) {
	dir := writeConfig(t, "http://archive.test/api/v1")

	_, err := execute(t, "--config", dir)
	assert.ErrorIs(t, err, errNotTerminal)
}

func TestPrintSearch_Empty(t *testing.T) {
	res := search.Result{Query: "zzz"}
	for i := range res.Slots {
		res.Slots[i] = search.SlotResult{Slot: search.Slot(i), Status: cache.StatusSuccess}
	}

	var out bytes.Buffer
	printSearch(&out, res, 80)
	assert.Equal(t, "No results for \"zzz\"\n", out.String())
}
