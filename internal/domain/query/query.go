// Package query filters and ranks the symptom catalog for a free-text query.
//
// Every call re-scans the catalog. The catalog is small (tens of categories,
// dozens of symptoms each) so no index or cache is kept between calls, and
// the same inputs always produce the same output.
package query

import (
	"errors"
	"sort"
	"strings"

	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/match"
)

// CategoryShortcut is the category-name score at or above which a category is
// shown with all of its symptoms instead of being filtered item by item.
const CategoryShortcut = 90

// ErrUnknownCategory is returned when a category filter names a category the
// catalog does not define.
var ErrUnknownCategory = errors.New("unknown category")

// CategoryFilter decides which categories take part in a query.
// A nil CategoryFilter allows every category.
type CategoryFilter interface {
	Allows(category string) bool
}

// Match is one symptom in a result group. Score is 0 when the group was not
// scored item by item (empty query or category shortcut).
type Match struct {
	Symptom string `json:"symptom"`
	Score   int    `json:"score"`
}

// Group is the visible part of one category.
type Group struct {
	Category      string  `json:"category"`
	CategoryScore int     `json:"category_score"`
	Matches       []Match `json:"matches"`
}

// Symptoms returns the symptom names of g in display order.
func (g Group) Symptoms() []string {
	out := make([]string, len(g.Matches))
	for i, m := range g.Matches {
		out[i] = m.Symptom
	}
	return out
}

// Shortcut reports whether the whole category matched by name.
func (g Group) Shortcut() bool {
	return g.CategoryScore >= CategoryShortcut
}

// FilterAndRank returns the categories allowed by active, in catalog order,
// each with the symptoms that match q ordered by descending score. Symptoms with
// equal scores keep their catalog order.
//
// A blank query returns every allowed category unchanged. A category whose
// name scores at least CategoryShortcut is returned whole and unreordered.
// Categories left with no matching symptom are dropped. The result is never nil.
func FilterAndRank(c *catalog.Catalog, q string, active CategoryFilter) []Group {
	groups := []Group{}
	if c == nil {
		return groups
	}

	trimmed := strings.TrimSpace(q)
	query := match.NewQuery(trimmed)

	for _, cat := range c.Categories() {
		if active != nil && !active.Allows(cat.ID) {
			continue
		}

		if trimmed == "" {
			groups = append(groups, whole(cat, 0))
			continue
		}

		catScore := query.Score(cat.ID)
		if catScore >= CategoryShortcut {
			groups = append(groups, whole(cat, catScore))
			continue
		}

		matches := rank(c, cat.Symptoms, query)
		if len(matches) == 0 {
			continue
		}
		groups = append(groups, Group{Category: cat.ID, CategoryScore: catScore, Matches: matches})
	}

	return groups
}

// EffectiveScore is the best score of a symptom's own name and its synonyms.
func EffectiveScore(c *catalog.Catalog, symptom, q string) int {
	return effective(c, symptom, match.NewQuery(strings.TrimSpace(q)))
}

func effective(c *catalog.Catalog, symptom string, q match.Query) int {
	best := q.Score(symptom)
	if best == match.ScoreExact {
		return best
	}
	for _, syn := range c.Synonyms(symptom) {
		if s := q.Score(syn); s > best {
			best = s
			if best == match.ScoreExact {
				break
			}
		}
	}
	return best
}

func rank(c *catalog.Catalog, symptoms []string, q match.Query) []Match {
	var matches []Match
	for _, s := range symptoms {
		if score := effective(c, s, q); score > 0 {
			matches = append(matches, Match{Symptom: s, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func whole(cat catalog.Category, score int) Group {
	matches := make([]Match, len(cat.Symptoms))
	for i, s := range cat.Symptoms {
		matches[i] = Match{Symptom: s}
	}
	return Group{Category: cat.ID, CategoryScore: score, Matches: matches}
}
