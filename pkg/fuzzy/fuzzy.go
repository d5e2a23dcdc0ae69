package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Candidate is a named record that can be suggested.
type Candidate struct {
	ID   string
	Kind string
	Text string
}

// Match is a ranked candidate.
type Match struct {
	Candidate
	Score float64
}

// LevenshteinDistance calculates the edit distance between two strings
// after normalisation.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(normalizeString(s1))
	r2 := []rune(normalizeString(s2))
	m, n := len(r1), len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// two rows are enough
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}

// Threshold returns the typo tolerance for a query of the given length.
func Threshold(query string) int {
	n := len([]rune(query))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Score rates how well query matches text. Zero means no match.
// Substring hits outrank word prefixes, which outrank typo-tolerant hits.
func Score(query, text string) float64 {
	q := normalizeString(query)
	t := normalizeString(text)
	if q == "" || t == "" {
		return 0
	}

	if strings.Contains(t, q) {
		score := 100.0
		if containsWord(t, q) {
			score += 50
		}
		if strings.HasPrefix(t, q) {
			score += 25
		}
		return score
	}

	threshold := Threshold(q)
	best := 0.0
	for _, word := range strings.Fields(t) {
		if strings.HasPrefix(word, q) {
			best = max(best, 40)
		}
		if dist := LevenshteinDistance(q, word); dist <= threshold {
			best = max(best, 50-float64(dist)*15)
		}
	}
	return best
}

// Rank scores every candidate against query and returns the matches, best
// first. limit <= 0 returns all matches.
func Rank(query string, candidates []Candidate, limit int) []Match {
	matches := make([]Match, 0)
	for _, c := range candidates {
		if s := Score(query, c.Text); s > 0 {
			matches = append(matches, Match{Candidate: c, Score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return strings.ToLower(matches[i].Text) < strings.ToLower(matches[j].Text)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// normalizeString lowercases, strips combining marks and collapses whitespace.
func normalizeString(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
