// Package search ranks symbol search candidates against a query.
package search

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/newthinker/stockdeck/internal/core"
)

const (
	// SuggestionLimit caps substring suggestions.
	SuggestionLimit = 10
	// MinQueryLength is the shortest query that produces suggestions.
	MinQueryLength = 2

	// locationDistance scales how much a late match position costs.
	locationDistance = 100.0
)

// NormalizeQuery trims and upper-cases a query.
func NormalizeQuery(q string) string {
	return strings.ToUpper(strings.TrimSpace(q))
}

// Substring returns catalog entries whose symbol or name contains the query,
// in catalog order, at most SuggestionLimit of them.
func Substring(query string, catalog []core.SearchEntry) []core.SearchEntry {
	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return []core.SearchEntry{}
	}

	out := make([]core.SearchEntry, 0, SuggestionLimit)
	for _, e := range catalog {
		if strings.Contains(strings.ToUpper(e.Symbol), q) || strings.Contains(strings.ToUpper(e.Name), q) {
			out = append(out, e)
			if len(out) == SuggestionLimit {
				break
			}
		}
	}
	return out
}

// Options tunes fuzzy matching.
type Options struct {
	// Threshold is the worst score still accepted, in [0,1]. Lower is stricter.
	Threshold float64
	// MinMatchLength excludes queries and fields shorter than it.
	MinMatchLength int
	// Limit caps the number of matches; zero means unlimited.
	Limit int
}

// DefaultOptions mirrors the dashboard search bar settings.
func DefaultOptions() Options {
	return Options{Threshold: 0.4, MinMatchLength: 2}
}

// Match is a fuzzy hit with its score; 0 is a perfect match.
type Match struct {
	core.SearchEntry
	Score float64 `json:"score"`
	Field string  `json:"field"`
}

// Fuzzy scores every entry's symbol, name and description against the query
// and returns those within the threshold, best first. Ties keep catalog order.
func Fuzzy(query string, catalog []core.SearchEntry, opts Options) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(catalog) == 0 || utf8.RuneCountInString(q) < opts.MinMatchLength {
		return []Match{}
	}

	matches := make([]Match, 0, len(catalog))
	for _, e := range catalog {
		best, field := math.Inf(1), ""
		for _, f := range []struct{ name, value string }{
			{"symbol", e.Symbol},
			{"name", e.Name},
			{"description", e.Description},
		} {
			if utf8.RuneCountInString(f.value) < opts.MinMatchLength {
				continue
			}
			if s := score(q, strings.ToLower(f.value)); s < best {
				best, field = s, f.name
			}
		}
		if field != "" && best <= opts.Threshold {
			matches = append(matches, Match{SearchEntry: e, Score: best, Field: field})
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// score finds the window of text closest to pattern by edit distance. The
// score is errors per pattern rune plus a small penalty for how far into the
// text the best window starts, capped at 1.
func score(pattern, text string) float64 {
	if pattern == text {
		return 0
	}
	p := []rune(pattern)
	t := []rune(text)

	if len(t) <= len(p) {
		d := levenshtein.ComputeDistance(pattern, text)
		return math.Min(1, float64(d)/float64(len(p)))
	}

	best := math.Inf(1)
	for width := len(p) - 1; width <= len(p)+1; width++ {
		if width < 1 || width > len(t) {
			continue
		}
		for start := 0; start+width <= len(t); start++ {
			d := levenshtein.ComputeDistance(pattern, string(t[start:start+width]))
			s := float64(d)/float64(len(p)) + float64(start)/locationDistance
			if s < best {
				best = s
			}
		}
	}
	return math.Min(1, best)
}
