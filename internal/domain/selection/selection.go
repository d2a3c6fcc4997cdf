// Package selection holds the transient state of one symptom-picking session:
// which categories are shown, which symptoms are ticked, and the current query.
// State changes only through the explicit transitions below; hosts re-run the
// query whenever they choose to.
//
// A Session is owned by a single goroutine (one user interaction at a time)
// and is not safe for concurrent use.
package selection

import (
	"strings"

	"github.com/corey/medreport/internal/domain/catalog"
)

// ClauseSeparator joins confirmed symptom names.
const ClauseSeparator = ", "

// ActiveCategories is the set of categories enabled for filtering. It is never
// empty: removing the last category resets it to catalog.All.
type ActiveCategories struct {
	ids []string // nil means catalog.All
}

// NewActiveCategories returns a selection of the given categories, or of every
// category when none (or catalog.All) is given.
func NewActiveCategories(ids ...string) ActiveCategories {
	var a ActiveCategories
	for _, id := range ids {
		if id == catalog.All || id == "" {
			return ActiveCategories{}
		}
		if !a.has(id) {
			a.ids = append(a.ids, id)
		}
	}
	return a
}

// IsAll reports whether every category is enabled.
func (a ActiveCategories) IsAll() bool {
	return len(a.ids) == 0
}

// Allows reports whether category passes the filter.
func (a ActiveCategories) Allows(category string) bool {
	return a.IsAll() || a.has(category)
}

// IDs returns the enabled identifiers in the order they were enabled,
// or just catalog.All.
func (a ActiveCategories) IDs() []string {
	if a.IsAll() {
		return []string{catalog.All}
	}
	out := make([]string, len(a.ids))
	copy(out, a.ids)
	return out
}

// Toggle flips one category. Toggling catalog.All resets to every category.
// Toggling a specific category while every category is enabled narrows the
// selection to that category. Removing the last category resets to catalog.All.
func (a ActiveCategories) Toggle(id string) ActiveCategories {
	if id == catalog.All || id == "" {
		return ActiveCategories{}
	}

	next := make([]string, 0, len(a.ids)+1)
	removed := false
	for _, cur := range a.ids {
		if cur == id {
			removed = true
			continue
		}
		next = append(next, cur)
	}
	if !removed {
		next = append(next, id)
	}
	if len(next) == 0 {
		return ActiveCategories{}
	}
	return ActiveCategories{ids: next}
}

func (a ActiveCategories) has(id string) bool {
	for _, cur := range a.ids {
		if cur == id {
			return true
		}
	}
	return false
}

// Symptoms is an insertion-ordered set of chosen canonical symptom names.
type Symptoms struct {
	names []string
}

// Toggle adds name if absent and removes it if present.
func (s *Symptoms) Toggle(name string) {
	for i, cur := range s.names {
		if cur == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
	s.names = append(s.names, name)
}

// Has reports whether name is selected.
func (s *Symptoms) Has(name string) bool {
	for _, cur := range s.names {
		if cur == name {
			return true
		}
	}
	return false
}

// Len returns the number of selected symptoms.
func (s *Symptoms) Len() int {
	return len(s.names)
}

// Names returns the selected names in the order they were chosen.
func (s *Symptoms) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Clause joins the selected names for appending to free text.
func (s *Symptoms) Clause() string {
	return strings.Join(s.names, ClauseSeparator)
}

// Clear removes every selection.
func (s *Symptoms) Clear() {
	s.names = nil
}

// AppendClause appends a confirmed clause to the free-text symptom description.
// A blank clause leaves text unchanged; blank text yields the clause alone.
func AppendClause(text, clause string) string {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return text
	}
	text = strings.TrimRight(text, " \t\n")
	if text == "" {
		return clause
	}
	if strings.HasSuffix(text, ",") || strings.HasSuffix(text, ".") {
		return text + " " + clause
	}
	return text + ", " + clause
}
