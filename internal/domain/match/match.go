// Package match scores how well a symptom name, category name, or synonym phrase
// matches free text typed by a user. Scoring is tiered: exact, prefix, substring,
// then a typo-tolerant edit-distance tier for queries longer than two characters.
//
// All functions are pure and safe for concurrent use.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Score tiers. A score of 0 means no match.
const (
	ScoreExact     = 100
	ScorePrefix    = 80
	ScoreSubstring = 60
	scoreFuzzyBase = 50
	fuzzyStep      = 10

	// minFuzzyLen is the query length (in runes) the fuzzy tier requires to be exceeded.
	minFuzzyLen = 2
)

// Normalize folds s into the form used for every comparison: NFKC-composed and
// case-folded. Whitespace is preserved; callers trim when they need to.
func Normalize(s string) string {
	// Caser carries state and must not be shared across goroutines.
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tolerance is the maximum edit distance accepted by the fuzzy tier for a
// query of n runes.
func Tolerance(n int) int {
	if n <= 5 {
		return 1
	}
	return 2
}

// Distance returns the Levenshtein distance between a and b after normalization.
// The distance is counted in runes, so accented and non-Latin input is not
// penalized per byte.
func Distance(a, b string) int {
	return distance(Normalize(a), Normalize(b))
}

func distance(a, b string) int {
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}
	return edlib.LevenshteinDistance(a, b)
}

// Score returns the relevance of candidate for query, from 0 (no match) to 100.
//
//	exact          100
//	prefix          80
//	substring       60
//	fuzzy (d<=tol)  50 - 10*d
func Score(candidate, query string) int {
	c := Normalize(candidate)
	q := Normalize(query)
	return score(c, q)
}

// score works on already-normalized input so callers scoring one query
// against many candidates normalize the query once.
func score(c, q string) int {
	switch {
	case c == q:
		return ScoreExact
	case strings.HasPrefix(c, q):
		return ScorePrefix
	case strings.Contains(c, q):
		return ScoreSubstring
	}

	n := utf8.RuneCountInString(q)
	if n <= minFuzzyLen {
		return 0
	}
	d := distance(q, c)
	if d > Tolerance(n) {
		return 0
	}
	return scoreFuzzyBase - d*fuzzyStep
}

// Query is a normalized query that can be scored against many candidates.
type Query struct {
	raw  string
	norm string
}

// NewQuery normalizes q once for repeated scoring.
func NewQuery(q string) Query {
	return Query{raw: q, norm: Normalize(q)}
}

// String returns the query as typed.
func (q Query) String() string { return q.raw }

// Empty reports whether the query has no content.
func (q Query) Empty() bool { return q.norm == "" }

// Score returns the relevance of candidate for q. Same tiers as Score.
func (q Query) Score(candidate string) int {
	return score(Normalize(candidate), q.norm)
}
