// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the medreport server: create, start, stop.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/corey/medreport/internal/adapters/bbolt"
	fsw "github.com/corey/medreport/internal/adapters/fsnotify"
	"github.com/corey/medreport/internal/adapters/offline"
	"github.com/corey/medreport/internal/adapters/web"
	"github.com/corey/medreport/internal/config"
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/domain/selection"
	"github.com/corey/medreport/internal/ports"
)

// App is the top-level container wiring all components together.
type App struct {
	Paths     *Paths
	Store     ports.ReportStore
	Watcher   ports.Watcher // nil when the embedded taxonomy is in use
	Provider  ports.AnalysisProvider
	WebServer *web.Server

	cfg     *config.Config
	db      *bbolt.Store
	catalog atomic.Pointer[catalog.Catalog]
	now     func() time.Time
}

// New creates an App with all dependencies wired. Does not start services.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	paths := NewPaths(cfg.DataDir, cfg.DBPath)
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{
		Paths: paths,
		Store: store,
		cfg:   cfg,
		db:    store,
		now:   time.Now,
	}
	a.catalog.Store(cat)

	if cfg.TaxonomyDir != "" {
		watcher, err := fsw.NewWatcher()
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		a.Watcher = watcher
	}

	a.Provider = NewRetryingProvider(offline.New(a), cfg.ProviderMaxRetries, cfg.ProviderBackoff)
	a.WebServer = web.NewServer(a, paths.PortFile, cfg.MaxUploadBytes)

	return a, nil
}

// Catalog returns the taxonomy currently in use. Callers may hold on to it;
// a reload swaps in a new catalog and never mutates the old one.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog.Load()
}

// ReloadTaxonomy re-reads TaxonomyDir. On failure the current catalog stays
// in place.
func (a *App) ReloadTaxonomy() error {
	if a.cfg.TaxonomyDir == "" {
		return nil
	}
	c, err := LoadCatalog(a.cfg)
	if err != nil {
		return err
	}
	a.catalog.Store(c)
	st := c.Stats()
	log.Info().
		Str("dir", a.cfg.TaxonomyDir).
		Int("categories", st.Categories).
		Int("symptoms", st.UniqueSymptoms).
		Int("synonyms", st.Synonyms).
		Msg("taxonomy reloaded")
	return nil
}

// onTaxonomyChanged handles a change event from the watcher.
func (a *App) onTaxonomyChanged(path string) {
	if err := a.ReloadTaxonomy(); err != nil {
		log.Error().Err(err).Str("file", path).Msg("taxonomy reload failed, keeping previous catalog")
	}
}

// Search filters and ranks the catalog for q. An empty categories list means
// every category.
func (a *App) Search(q string, categories []string) ([]query.Group, error) {
	c := a.Catalog()
	for _, id := range categories {
		if id != catalog.All && !c.HasCategory(id) {
			return nil, fmt.Errorf("%w: %q", query.ErrUnknownCategory, id)
		}
	}
	return query.FilterAndRank(c, q, selection.NewActiveCategories(categories...)), nil
}

// Analyze appends the selected symptoms to the request text, runs the
// analysis provider and saves the resulting report.
func (a *App) Analyze(ctx context.Context, req ports.AnalysisRequest, selected []string) (*report.Report, error) {
	c := a.Catalog()
	var picked selection.Symptoms
	for _, name := range selected {
		if !c.HasSymptom(name) {
			return nil, fmt.Errorf("%w: unknown symptom %q", ports.ErrInvalidInput, name)
		}
		if !picked.Has(name) {
			picked.Toggle(name)
		}
	}
	req.Symptoms = selection.AppendClause(strings.TrimSpace(req.Symptoms), picked.Clause())

	if err := req.Validate(a.cfg.MaxUploadBytes); err != nil {
		return nil, err
	}

	r, err := a.Provider.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = a.now().UTC()
	if err := a.Store.Save(r); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	log.Info().
		Str("id", r.ID).
		Str("kind", string(r.Kind)).
		Str("urgency", string(r.Urgency)).
		Int("conditions", len(r.Conditions)).
		Msg("report generated")
	return r, nil
}

// Reports lists saved reports, newest first.
func (a *App) Reports() ([]*report.Report, error) {
	return a.Store.List()
}

// Report returns one saved report.
func (a *App) Report(id string) (*report.Report, error) {
	return a.Store.Get(id)
}

// DeleteReport removes a saved report. Deleting an unknown id is not an error.
func (a *App) DeleteReport(id string) error {
	return a.Store.Delete(id)
}

// Start begins serving the HTTP API and watching the taxonomy directory.
func (a *App) Start() error {
	if err := a.WebServer.Start(a.cfg.HTTPAddr); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}
	// Watcher failure is non-fatal: the loaded taxonomy stays in use.
	if a.Watcher != nil {
		if err := a.Watcher.Watch(a.cfg.TaxonomyDir, a.onTaxonomyChanged); err != nil {
			log.Warn().Err(err).Str("dir", a.cfg.TaxonomyDir).Msg("taxonomy watcher unavailable")
		}
	}
	return nil
}

// Stop gracefully shuts down all services and closes the store.
func (a *App) Stop() error {
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
	if a.WebServer != nil {
		a.WebServer.Stop()
	}
	a.Paths.CleanEphemeral()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
