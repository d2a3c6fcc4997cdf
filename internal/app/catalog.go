package app

import (
	"fmt"
	"os"

	"github.com/corey/medreport/internal/config"
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/taxonomy"
)

// LoadCatalog loads the taxonomy named by cfg: the directory in TaxonomyDir
// when set, the embedded default otherwise.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return loadTaxonomy(cfg.TaxonomyDir, cfg.StrictTaxonomy)
}

func loadTaxonomy(dir string, strict bool) (*catalog.Catalog, error) {
	opts := catalog.Options{Strict: strict}
	if dir == "" {
		c, err := catalog.Load(taxonomy.FS, taxonomy.Dir, opts)
		if err != nil {
			return nil, fmt.Errorf("load embedded taxonomy: %w", err)
		}
		return c, nil
	}
	c, err := catalog.Load(os.DirFS(dir), ".", opts)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", dir, err)
	}
	return c, nil
}
