package match

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence buckets a similarity score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ConfidenceFor maps a score to its bucket.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Scores for literal title-prefix and word-prefix hits.
const (
	prefixScore     = 1.0
	wordPrefixScore = 0.96
)

// Score returns how well title matches a type-ahead query, in [0, 1].
func Score(query, title string) float64 {
	return score(CleanTitle(query), CleanTitle(title))
}

func score(q, t string) float64 {
	if q == "" {
		return 1
	}
	if t == "" {
		return 0
	}
	if strings.HasPrefix(t, q) {
		return prefixScore
	}
	if strings.Contains(t, " "+q) {
		return wordPrefixScore
	}

	s := float64(edlib.JaroWinklerSimilarity(q, t))
	// Also compare against the title's leading runes so "bords" finds
	// "boards of canada".
	qr, tr := []rune(q), []rune(t)
	if len(tr) > len(qr) {
		s = max(s, float64(edlib.JaroWinklerSimilarity(q, string(tr[:len(qr)]))))
	}
	return adjustScoreForNumbers(s, numberRegex.FindAllString(q, -1), numberRegex.FindAllString(t, -1))
}

// Ranked is one candidate with its score.
type Ranked[T any] struct {
	Item       T
	Score      float64
	Confidence Confidence
}

// Rank scores items against query and returns those at or above
// ConfidenceMedium, best first. Ties keep input order. An empty query returns
// every item in input order.
func Rank[T any](query string, items []T, title func(T) string) []Ranked[T] {
	q := CleanTitle(query)
	out := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		s := score(q, CleanTitle(title(item)))
		c := ConfidenceFor(s)
		if c < ConfidenceMedium {
			continue
		}
		out = append(out, Ranked[T]{Item: item, Score: s, Confidence: c})
	}
	slices.SortStableFunc(out, func(a, b Ranked[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Filter is Rank without the scores.
func Filter[T any](query string, items []T, title func(T) string) []T {
	ranked := Rank(query, items, title)
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}

// adjustScoreForNumbers rewards a shared number ("Vol 2" vs "Vol 2") and
// penalises a missing or different one.
func adjustScoreForNumbers(score float64, queryNums, titleNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(titleNums) == 0 {
		return score * 0.85
	}
	for _, n := range queryNums {
		if slices.Contains(titleNums, n) {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
