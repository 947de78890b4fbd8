package search

import (
	"sort"
	"strings"
	"unicode"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Match is a title scored against a query
type Match struct {
	Index          int   // Index in source slice
	Score          int   // Lower is closer
	MatchedIndexes []int // Rune positions to highlight
}

// Score bands, lower is better
const (
	scoreExact     = 0
	scorePrefix    = 10
	scorePartial   = 20
	scoreSubstring = 50
	scoreTypo      = 100
	scoreMissing   = 1000
	extraWordCost  = 5
)

// Rank orders titles by closeness to query. The archive already decided
// which records match, so nothing is dropped: titles that miss a query
// word sink to the bottom. Equal scores keep their input order.
func Rank(query string, titles []string) []Match {
	queryTokens := tokenize(strings.TrimSpace(query))

	matches := make([]Match, len(titles))
	for i, title := range titles {
		matches[i] = scoreTitle(title, queryTokens, i)
		if len(matches[i].MatchedIndexes) == 0 {
			matches[i].MatchedIndexes = subsequenceIndexes(query, title)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score < matches[b].Score
	})
	return matches
}

// Filter keeps the titles that contain query as a subsequence, best first
func Filter(query string, titles []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lower := make([]string, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}

	found := fuzzy.Find(strings.ToLower(query), lower)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Index:          m.Index,
			Score:          -m.Score,
			MatchedIndexes: runeIndexes(lower[m.Index], m.MatchedIndexes),
		}
	}
	return matches
}

type token struct {
	text       string // Lowercase
	start, end int    // Rune range in the original string
}

func tokenize(text string) []token {
	var tokens []token
	runes := []rune(strings.ToLower(text))

	inWord := false
	start := 0
	for i, r := range runes {
		wordChar := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case wordChar && !inWord:
			start = i
			inWord = true
		case !wordChar && inWord:
			tokens = append(tokens, token{text: string(runes[start:i]), start: start, end: i})
			inWord = false
		}
	}
	if inWord {
		tokens = append(tokens, token{text: string(runes[start:]), start: start, end: len(runes)})
	}
	return tokens
}

// scoreTitle matches every query word against a distinct title word
func scoreTitle(title string, queryTokens []token, index int) Match {
	titleTokens := tokenize(title)
	used := make([]bool, len(titleTokens))

	var indexes []int
	total := 0
	for _, q := range queryTokens {
		best, bestIdx := -1, -1
		var bestRange []int
		for i, t := range titleTokens {
			if used[i] {
				continue
			}
			score, rng := matchToken(q.text, t)
			if score >= 0 && (best < 0 || score < best) {
				best, bestIdx, bestRange = score, i, rng
			}
		}
		if best < 0 {
			total += scoreMissing
			continue
		}
		used[bestIdx] = true
		total += best
		indexes = append(indexes, bestRange...)
	}

	if extra := len(titleTokens) - len(queryTokens); extra > 0 {
		total += extra * extraWordCost
	}

	sort.Ints(indexes)
	return Match{Index: index, Score: total, MatchedIndexes: indexes}
}

// matchToken returns a negative score when the words do not match
func matchToken(query string, t token) (int, []int) {
	qLen := len([]rune(query))
	switch {
	case query == t.text:
		return scoreExact, indexRange(t.start, t.end)
	case strings.HasPrefix(t.text, query):
		return scorePrefix, indexRange(t.start, t.start+qLen)
	case strings.HasPrefix(query, t.text):
		return scorePartial, indexRange(t.start, t.end)
	}

	if idx := strings.Index(t.text, query); idx >= 0 {
		offset := len([]rune(t.text[:idx]))
		return scoreSubstring + offset, indexRange(t.start+offset, t.start+offset+qLen)
	}

	if typos := allowedTypos(qLen); typos > 0 {
		if dist := lfuzzy.LevenshteinDistance(query, t.text); dist <= typos {
			return scoreTypo + dist*20, indexRange(t.start, t.end)
		}
	}
	return -1, nil
}

// allowedTypos: 1-3 runes none, 4-6 one, 7+ two
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

func subsequenceIndexes(query, title string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	lower := strings.ToLower(title)
	if query == "" || !lfuzzy.MatchFold(query, lower) {
		return nil
	}
	found := fuzzy.Find(query, []string{lower})
	if len(found) == 0 {
		return nil
	}
	return runeIndexes(lower, found[0].MatchedIndexes)
}

// runeIndexes converts byte offsets into s to rune positions
func runeIndexes(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	pos := make(map[int]int, len(s))
	n := 0
	for i := range s {
		pos[i] = n
		n++
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if r, ok := pos[b]; ok {
			out = append(out, r)
		}
	}
	return out
}

func indexRange(start, end int) []int {
	out := make([]int, end-start)
	for i := range out {
		out[i] = start + i
	}
	return out
}
