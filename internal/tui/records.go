package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/service"
	"github.com/mmcdole/romshelf/internal/tui/components"
)

// mapResult converts the data of a result, keeping its state. Data is only
// converted when there is some to convert.
func mapResult[T, U any](r cache.Result[T], f func(T) U) cache.Result[U] {
	out := cache.Result[U]{Status: r.Status, Err: r.Err, Stale: r.Stale, FetchedAt: r.FetchedAt}
	if r.Status == cache.StatusSuccess || r.Stale {
		out.Data = f(r.Data)
	}
	return out
}

// toRows converts a page of records into table rows
func toRows[T domain.Record](r cache.Result[domain.Page[T]], cells func(T) []string) cache.Result[rowPage] {
	return mapResult(r, func(p domain.Page[T]) rowPage {
		rows := make([]components.Row, 0, len(p.Items))
		for _, item := range p.Items {
			rows = append(rows, components.Row{
				ID:    item.GetID(),
				Route: item.GetKind().DetailRoute(item.GetID()),
				Cells: cells(item),
			})
		}
		return rowPage{Rows: rows, Total: p.Total, Page: p.Page, TotalPages: p.TotalPages}
	})
}

func gameCells(g domain.Game) []string {
	var content []string
	if g.HasHacks() {
		content = append(content, "hacks")
	}
	if g.HasTranslations() {
		content = append(content, "trans")
	}
	return []string{g.Title, g.PlatformName, g.GenreName, strings.Join(content, " ")}
}

func hackCells(h domain.Hack) []string {
	return []string{h.Title, h.GameTitle, h.ConsoleName, h.CategoryName, formatCount(h.Downloads)}
}

func translationCells(t domain.Translation) []string {
	return []string{t.DisplayTitle(), t.LanguageName, t.ConsoleName, t.StatusName, t.Version}
}

func utilityCells(u domain.Utility) []string {
	return []string{u.Title, u.CategoryName, u.OSName, formatCount(u.Downloads)}
}

func documentCells(d domain.Document) []string {
	return []string{d.Title, d.CategoryName, d.ConsoleName, d.SkillLevel}
}

func homebrewCells(h domain.Homebrew) []string {
	return []string{h.Title, h.CategoryName, h.PlatformName, formatCount(h.Downloads)}
}

// loadDetail fetches and flattens the detail record of kind
func loadDetail(ctx context.Context, s *service.Services, kind domain.Kind, id int) cache.Result[detailDoc] {
	switch kind {
	case domain.KindGame:
		return mapResult(s.Games.Detail(ctx, id), gameDoc)
	case domain.KindHack:
		return mapResult(s.Hacks.Detail(ctx, id), hackDoc)
	case domain.KindTranslation:
		return mapResult(s.Translations.Detail(ctx, id), translationDoc)
	case domain.KindUtility:
		return mapResult(s.Utilities.Detail(ctx, id), utilityDoc)
	case domain.KindDocument:
		return mapResult(s.Documents.Detail(ctx, id), documentDoc)
	case domain.KindHomebrew:
		return mapResult(s.Homebrew.Detail(ctx, id), homebrewDoc)
	}
	return cache.Disabled[detailDoc]()
}

// fields drops entries with an empty value
func fields(pairs ...string) []detailField {
	var out []detailField
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			out = append(out, detailField{Label: pairs[i], Value: pairs[i+1]})
		}
	}
	return out
}

func gameDoc(g domain.GameDetail) detailDoc {
	return detailDoc{
		Title:    g.Title,
		Subtitle: g.JapaneseTitle,
		Fields: fields(
			"Platform", g.PlatformName,
			"Genre", g.GenreName,
			"Publisher", g.Publisher,
			"Hacks", strconv.Itoa(g.HackCount),
			"Translations", strconv.Itoa(g.TranslationCount),
			"Utilities", strconv.Itoa(g.UtilityCount),
			"Documents", strconv.Itoa(g.DocumentCount),
		),
	}
}

func patchFields(p domain.PatchFile) []string {
	file := p.Filename
	if p.NoFile != 0 {
		file = "not available"
	}
	return []string{
		"File", file,
		"Size", formatSize(p.Filesize),
		"Patch", joinNonEmpty(p.PatchType, p.PatchHint),
	}
}

func hackDoc(h domain.HackDetail) detailDoc {
	pairs := []string{
		"Game", h.GameTitle,
		"Console", h.ConsoleName,
		"Category", h.CategoryName,
		"Version", h.Version,
		"Released", formatDate(h.ReleaseDate),
		"Downloads", formatCount(h.Downloads),
	}
	pairs = append(pairs, patchFields(h.PatchFile)...)
	pairs = append(pairs, "Updated", formatDate(h.LastModified))

	return detailDoc{
		Title:       h.Title,
		Subtitle:    h.GameTitle,
		Fields:      fields(pairs...),
		Description: h.Description,
		GameID:      h.GameKey,
	}
}

func translationDoc(t domain.TranslationDetail) detailDoc {
	pairs := []string{
		"Game", t.DisplayTitle(),
		"Language", t.LanguageName,
		"Console", t.ConsoleName,
		"Status", t.StatusName,
		"Version", t.Version,
		"Released", formatDate(t.ReleaseDate),
		"Downloads", formatCount(t.Downloads),
	}
	pairs = append(pairs, patchFields(t.PatchFile)...)
	pairs = append(pairs, "Updated", formatDate(t.LastModified))

	return detailDoc{
		Title:       t.DisplayTitle(),
		Subtitle:    joinNonEmpty(t.LanguageName, t.Version),
		Fields:      fields(pairs...),
		Description: t.Description,
		GameID:      t.GameKey,
	}
}

func utilityDoc(u domain.UtilityDetail) detailDoc {
	file := u.Filename
	if u.NoFile != 0 {
		file = "not available"
	}
	return detailDoc{
		Title:    u.Title,
		Subtitle: u.CategoryName,
		Fields: fields(
			"Category", u.CategoryName,
			"Console", u.ConsoleName,
			"Game", u.GameTitle,
			"OS", u.OSName,
			"Version", u.Version,
			"Released", formatUnix(u.ReleaseDate),
			"License", u.License,
			"Source", u.Source,
			"File", file,
			"Downloads", formatCount(u.Downloads),
		),
		Description: u.Description,
		GameID:      u.GameKey,
	}
}

func documentDoc(d domain.DocumentDetail) detailDoc {
	file := d.Filename
	if d.NoFile != 0 {
		file = "not available"
	}
	return detailDoc{
		Title:    d.Title,
		Subtitle: d.CategoryName,
		Fields: fields(
			"Category", d.CategoryName,
			"Console", d.ConsoleName,
			"Game", d.GameTitle,
			"Skill level", d.SkillLevel,
			"Version", d.Version,
			"Released", formatUnix(d.ReleaseDate),
			"File", file,
			"Downloads", formatCount(d.Downloads),
		),
		Description: d.Description,
		GameID:      d.GameKey,
	}
}

func homebrewDoc(h domain.HomebrewDetail) detailDoc {
	file := h.Filename
	if h.NoFile != 0 {
		file = "not available"
	}
	return detailDoc{
		Title:    h.Title,
		Subtitle: joinNonEmpty(h.PlatformName, h.Version),
		Fields: fields(
			"Category", h.CategoryName,
			"Platform", h.PlatformName,
			"Version", h.Version,
			"Released", formatDate(h.ReleaseDate),
			"File", file,
			"Downloads", formatCount(h.Downloads),
		),
		Description: joinParagraphs(h.Description, h.Readme),
	}
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}

func joinParagraphs(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

// formatCount groups thousands: 1234567 -> 1,234,567
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 || len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatSize renders a byte count in binary units
func formatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDate keeps the date part of an archive timestamp
func formatDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

func formatUnix(sec int64) string {
	if sec <= 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}
