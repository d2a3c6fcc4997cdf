// Package taxonomy embeds the default symptom taxonomy for compile-time inclusion.
// The taxonomy is a set of JSON files: categories.json lists body-system categories
// with their canonical symptom names in display order, and synonyms.json maps each
// canonical symptom name to the lay phrases a patient might type instead.
//
// Usage:
//
//	catalog.Load(taxonomy.FS, taxonomy.Dir, catalog.Options{})
package taxonomy

import "embed"

// Dir is the directory inside FS holding the current taxonomy version.
const Dir = "v1"

//go:embed v1/*.json
var FS embed.FS
