package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/corey/medreport/internal/domain/match"
)

// File names inside a taxonomy directory.
const (
	CategoriesFile = "categories.json"
	SynonymsFile   = "synonyms.json"
)

// ErrOrphanSynonyms is returned by a strict load when the synonym table names
// symptoms that appear in no category.
var ErrOrphanSynonyms = errors.New("synonyms reference unknown symptoms")

// CategoryDef is the JSON schema for one category in categories.json.
type CategoryDef struct {
	Category string   `json:"category"`
	Symptoms []string `json:"symptoms"`
}

// Options controls load-time validation.
type Options struct {
	// Strict rejects synonym keys that name no symptom in any category.
	// Non-strict loads keep them and report them through Catalog.Orphans.
	Strict bool
}

// Load reads categories.json and synonyms.json from dir in fsys and builds
// an immutable Catalog. synonyms.json is optional.
func Load(fsys fs.FS, dir string, opts Options) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, CategoriesFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CategoriesFile, err)
	}
	var defs []CategoryDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CategoriesFile, err)
	}

	synonyms := make(map[string][]string)
	data, err = fs.ReadFile(fsys, path.Join(dir, SynonymsFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// no synonyms registered
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", SynonymsFile, err)
	default:
		if err := json.Unmarshal(data, &synonyms); err != nil {
			return nil, fmt.Errorf("parse %s: %w", SynonymsFile, err)
		}
	}

	return New(defs, synonyms, opts)
}

// New validates defs and synonyms and builds a Catalog. The inputs are copied;
// later changes to them do not affect the Catalog.
func New(defs []CategoryDef, synonyms map[string][]string, opts Options) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("taxonomy is empty: no categories")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(defs)),
		byID:       make(map[string]int, len(defs)),
		owners:     make(map[string][]string),
		synonyms:   make(map[string][]string, len(synonyms)),
	}

	for i, d := range defs {
		id := strings.TrimSpace(d.Category)
		if id == "" {
			return nil, fmt.Errorf("category %d: empty identifier", i)
		}
		if strings.EqualFold(id, All) {
			return nil, fmt.Errorf("category %d: %q is reserved", i, All)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate category %q", id)
		}
		if len(d.Symptoms) == 0 {
			return nil, fmt.Errorf("category %q has no symptoms", id)
		}

		seen := make(map[string]bool, len(d.Symptoms))
		symptoms := make([]string, 0, len(d.Symptoms))
		for _, s := range d.Symptoms {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("category %q: empty symptom name", id)
			}
			if seen[s] {
				return nil, fmt.Errorf("category %q: duplicate symptom %q", id, s)
			}
			seen[s] = true
			symptoms = append(symptoms, s)
			c.owners[s] = append(c.owners[s], id)
		}

		c.byID[id] = len(c.categories)
		c.categories = append(c.categories, Category{ID: id, Symptoms: symptoms})
		c.symptomCount += len(symptoms)
	}

	for name, phrases := range synonyms {
		name = strings.TrimSpace(name)
		set := make([]string, 0, len(phrases))
		seen := make(map[string]bool, len(phrases))
		for _, p := range phrases {
			p = strings.TrimSpace(p)
			key := match.Normalize(p)
			if p == "" || seen[key] {
				continue
			}
			seen[key] = true
			set = append(set, p)
		}
		c.synonyms[name] = append(c.synonyms[name], set...)
		c.synonymCount += len(set)

		if _, ok := c.owners[name]; !ok {
			c.orphans = append(c.orphans, name)
		}
	}
	sort.Strings(c.orphans)

	if opts.Strict && len(c.orphans) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrphanSynonyms, strings.Join(c.orphans, ", "))
	}

	return c, nil
}
