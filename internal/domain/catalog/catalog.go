// Package catalog holds the symptom taxonomy: body-system categories, each with
// its canonical symptom names in display order, and a table of lay synonyms per
// symptom. A Catalog is loaded once (usually from the embedded taxonomy files)
// and is immutable afterwards; every accessor returns a copy.
//
// Synonym keys are expected to name a symptom listed in some category. Keys that
// do not are kept in non-strict loads and reported by Orphans.
package catalog

// All is the reserved category identifier meaning "every category".
const All = "all"

// Category is a named group of canonical symptom names.
type Category struct {
	ID       string
	Symptoms []string
}

// Catalog is the read-only symptom taxonomy.
type Catalog struct {
	categories []Category
	byID       map[string]int      // category id -> position in categories
	owners     map[string][]string // symptom -> owning category ids
	synonyms   map[string][]string // symptom -> synonym phrases
	orphans    []string            // synonym keys with no owning category

	symptomCount int
	synonymCount int
}

// Stats summarizes a Catalog.
type Stats struct {
	Categories     int `json:"categories"`
	SymptomEntries int `json:"symptom_entries"` // includes symptoms listed in several categories
	UniqueSymptoms int `json:"unique_symptoms"`
	Synonyms       int `json:"synonyms"`
	Orphans        int `json:"orphans"`
}

// CategoryIDs returns All followed by every category identifier in declaration order.
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.categories)+1)
	ids = append(ids, All)
	for _, cat := range c.categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

// Categories returns every category in declaration order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{ID: cat.ID, Symptoms: clone(cat.Symptoms)}
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// HasCategory reports whether id names a category. All is not a category.
func (c *Catalog) HasCategory(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Symptoms returns the symptom names of a category in declaration order,
// or nil if the category is unknown.
func (c *Catalog) Symptoms(category string) []string {
	i, ok := c.byID[category]
	if !ok {
		return nil
	}
	return clone(c.categories[i].Symptoms)
}

// Synonyms returns the synonym phrases registered for a canonical symptom name.
// The result is empty, never nil, when none are registered.
func (c *Catalog) Synonyms(symptom string) []string {
	s := c.synonyms[symptom]
	if len(s) == 0 {
		return []string{}
	}
	return clone(s)
}

// HasSymptom reports whether name is listed in at least one category.
func (c *Catalog) HasSymptom(name string) bool {
	_, ok := c.owners[name]
	return ok
}

// CategoriesOf returns the categories listing a symptom, in declaration order.
func (c *Catalog) CategoriesOf(symptom string) []string {
	return clone(c.owners[symptom])
}

// Orphans returns synonym keys that name no symptom in any category, sorted.
func (c *Catalog) Orphans() []string {
	return clone(c.orphans)
}

// Stats returns counts describing the catalog.
func (c *Catalog) Stats() Stats {
	return Stats{
		Categories:     len(c.categories),
		SymptomEntries: c.symptomCount,
		UniqueSymptoms: len(c.owners),
		Synonyms:       c.synonymCount,
		Orphans:        len(c.orphans),
	}
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
