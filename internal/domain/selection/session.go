package selection

import (
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
)

// Session is one open symptom picker: query text, active categories and the
// ticked symptoms. Confirm and Cancel both reset it.
type Session struct {
	Query    string
	Active   ActiveCategories
	Selected Symptoms
}

// NewSession returns an empty session showing every category.
func NewSession() *Session {
	return &Session{}
}

// SetQuery replaces the search text.
func (s *Session) SetQuery(q string) {
	s.Query = q
}

// ToggleCategory flips one category filter.
func (s *Session) ToggleCategory(id string) {
	s.Active = s.Active.Toggle(id)
}

// ToggleSymptom ticks or unticks a symptom.
func (s *Session) ToggleSymptom(name string) {
	s.Selected.Toggle(name)
}

// Results runs the current query against c.
func (s *Session) Results(c *catalog.Catalog) []query.Group {
	return query.FilterAndRank(c, s.Query, s.Active)
}

// Confirm returns the clause for the selected symptoms and resets the session.
func (s *Session) Confirm() string {
	clause := s.Selected.Clause()
	s.Reset()
	return clause
}

// Cancel discards the selection.
func (s *Session) Cancel() {
	s.Reset()
}

// Reset returns the session to its initial state.
func (s *Session) Reset() {
	s.Query = ""
	s.Active = ActiveCategories{}
	s.Selected.Clear()
}
