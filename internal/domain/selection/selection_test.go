package selection

import (
	"testing"

	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Active categories
// =============================================================================

func TestActiveCategories_DefaultIsAll(t *testing.T) {
	var a ActiveCategories
	assert.True(t, a.IsAll())
	assert.Equal(t, []string{catalog.All}, a.IDs())
	assert.True(t, a.Allows("Respiratory"))
}

func TestActiveCategories_ToggleSpecificRemovesAll(t *testing.T) {
	a := ActiveCategories{}.Toggle("Respiratory")
	assert.False(t, a.IsAll())
	assert.Equal(t, []string{"Respiratory"}, a.IDs())
	assert.True(t, a.Allows("Respiratory"))
	assert.False(t, a.Allows("Digestive"))
}

func TestActiveCategories_ToggleLastResetsToAll(t *testing.T) {
	a := ActiveCategories{}.Toggle("Respiratory").Toggle("Respiratory")
	assert.True(t, a.IsAll())
	assert.Equal(t, []string{catalog.All}, a.IDs(), "never empty")
}

func TestActiveCategories_ToggleSequence(t *testing.T) {
	a := ActiveCategories{}.
		Toggle("Respiratory").
		Toggle("Digestive").
		Toggle("Skin").
		Toggle("Digestive")
	assert.Equal(t, []string{"Respiratory", "Skin"}, a.IDs())

	a = a.Toggle(catalog.All)
	assert.True(t, a.IsAll())
}

func TestActiveCategories_ToggleDoesNotMutateReceiver(t *testing.T) {
	a := NewActiveCategories("Respiratory", "Skin")
	b := a.Toggle("Skin")
	assert.Equal(t, []string{"Respiratory", "Skin"}, a.IDs())
	assert.Equal(t, []string{"Respiratory"}, b.IDs())
}

func TestNewActiveCategories(t *testing.T) {
	assert.True(t, NewActiveCategories().IsAll())
	assert.True(t, NewActiveCategories("Skin", catalog.All).IsAll())
	assert.Equal(t, []string{"Skin", "Urinary"}, NewActiveCategories("Skin", "Urinary", "Skin").IDs())
}

// =============================================================================
// Selected symptoms
// =============================================================================

func TestSymptoms_ToggleKeepsInsertionOrder(t *testing.T) {
	var s Symptoms
	s.Toggle("Fever")
	s.Toggle("Cough")
	s.Toggle("Headache")
	s.Toggle("Cough")
	s.Toggle("Nausea")

	assert.Equal(t, []string{"Fever", "Headache", "Nausea"}, s.Names())
	assert.Equal(t, "Fever, Headache, Nausea", s.Clause())
	assert.True(t, s.Has("Headache"))
	assert.False(t, s.Has("Cough"))
	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Clause())
}

func TestAppendClause(t *testing.T) {
	tests := []struct {
		text, clause, want string
	}{
		{"", "Fever, Cough", "Fever, Cough"},
		{"feeling unwell for 3 days", "Fever, Cough", "feeling unwell for 3 days, Fever, Cough"},
		{"feeling unwell.", "Fever", "feeling unwell. Fever"},
		{"headache,  ", "Fever", "headache, Fever"},
		{"headache", "", "headache"},
		{"headache", "   ", "headache"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AppendClause(tt.text, tt.clause), "AppendClause(%q, %q)", tt.text, tt.clause)
	}
}

// =============================================================================
// Session transitions
// =============================================================================

func TestSession_ConfirmReturnsClauseAndResets(t *testing.T) {
	c, err := catalog.Load(taxonomy.FS, taxonomy.Dir, catalog.Options{})
	require.NoError(t, err)

	s := NewSession()
	s.ToggleCategory("Digestive")
	s.SetQuery("tummy ache")

	groups := s.Results(c)
	require.Len(t, groups, 1)
	require.Equal(t, "Digestive", groups[0].Category)
	s.ToggleSymptom(groups[0].Matches[0].Symptom)
	s.ToggleSymptom("Nausea")

	assert.Equal(t, "Abdominal pain, Nausea", s.Confirm())
	assert.Equal(t, "", s.Query)
	assert.True(t, s.Active.IsAll())
	assert.Equal(t, 0, s.Selected.Len())
}

func TestSession_CancelDiscards(t *testing.T) {
	s := NewSession()
	s.SetQuery("cough")
	s.ToggleCategory("Respiratory")
	s.ToggleSymptom("Cough")
	s.Cancel()

	assert.Equal(t, "", s.Query)
	assert.True(t, s.Active.IsAll())
	assert.Equal(t, "", s.Confirm())
}
