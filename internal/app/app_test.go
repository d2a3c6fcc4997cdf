package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/medreport/internal/config"
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:                "test",
		LogLevel:           "disabled",
		HTTPAddr:           "127.0.0.1:0",
		DataDir:            dir,
		DBPath:             filepath.Join(dir, "reports.db"),
		ProviderMaxRetries: 1,
		MaxUploadBytes:     1 << 20,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Stop() })
	return a
}

func writeTaxonomy(t *testing.T, dir string, defs []catalog.CategoryDef) {
	t.Helper()
	data, err := json.Marshal(defs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.CategoriesFile), data, 0644))
}

func TestNew_EmbeddedTaxonomy(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	st := a.Catalog().Stats()
	assert.Equal(t, 11, st.Categories)
	assert.Equal(t, 92, st.UniqueSymptoms)
	assert.Empty(t, st.Orphans)
	assert.Nil(t, a.Watcher)
}

func TestNew_BadTaxonomyDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.TaxonomyDir = filepath.Join(t.TempDir(), "missing")

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	groups, err := a.Search("tummy ache", nil)
	require.NoError(t, err)
	var digestive *query.Group
	for i := range groups {
		if groups[i].Category == "Digestive" {
			digestive = &groups[i]
		}
	}
	require.NotNil(t, digestive)
	assert.Equal(t, "Abdominal pain", digestive.Matches[0].Symptom)
	assert.Equal(t, 100, digestive.Matches[0].Score)
}

func TestSearch_CategoryFilter(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	groups, err := a.Search("", []string{"Respiratory"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Respiratory", groups[0].Category)

	all, err := a.Search("", []string{catalog.All})
	require.NoError(t, err)
	assert.Len(t, all, 11)
}

func TestSearch_UnknownCategory(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := a.Search("fever", []string{"Elbows"})
	assert.ErrorIs(t, err, query.ErrUnknownCategory)
}

func TestAnalyze_AppendsSelectedAndSaves(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	r, err := a.Analyze(context.Background(),
		ports.AnalysisRequest{Symptoms: "  feeling rough  "},
		[]string{"Fever", "Cough", "Fever"})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, fixed, r.CreatedAt)
	assert.Equal(t, "feeling rough, Fever, Cough", r.Input)
	assert.Equal(t, report.KindSymptoms, r.Kind)
	assert.Equal(t, report.DefaultDisclaimer, r.Disclaimer)

	got, err := a.Report(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Input, got.Input)

	list, err := a.Reports()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
}

func TestAnalyze_SelectedOnly(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	r, err := a.Analyze(context.Background(), ports.AnalysisRequest{}, []string{"Headache"})
	require.NoError(t, err)
	assert.Equal(t, "Headache", r.Input)
}

func TestAnalyze_UnknownSymptom(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := a.Analyze(context.Background(), ports.AnalysisRequest{Symptoms: "x"}, []string{"Elbow wobble"})
	assert.ErrorIs(t, err, ports.ErrInvalidInput)

	list, err := a.Reports()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnalyze_EmptyRequest(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := a.Analyze(context.Background(), ports.AnalysisRequest{Symptoms: "   "}, nil)
	assert.ErrorIs(t, err, ports.ErrInvalidInput)
}

func TestAnalyze_AttachmentTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxUploadBytes = 4
	a := newTestApp(t, cfg)

	req := ports.AnalysisRequest{Attachment: ports.EncodeAttachment("cbc.pdf", "application/pdf", []byte("%PDF-1.7"))}
	_, err := a.Analyze(context.Background(), req, nil)
	assert.ErrorIs(t, err, ports.ErrInvalidInput)
}

func TestDeleteReport(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	r, err := a.Analyze(context.Background(), ports.AnalysisRequest{Symptoms: "fever and cough"}, nil)
	require.NoError(t, err)

	require.NoError(t, a.DeleteReport(r.ID))
	_, err = a.Report(r.ID)
	assert.ErrorIs(t, err, ports.ErrReportNotFound)

	// Idempotent
	assert.NoError(t, a.DeleteReport(r.ID))
}

func TestReloadTaxonomy(t *testing.T) {
	dir := t.TempDir()
	writeTaxonomy(t, dir, []catalog.CategoryDef{
		{Category: "General", Symptoms: []string{"Fever"}},
	})
	cfg := testConfig(t)
	cfg.TaxonomyDir = dir
	a := newTestApp(t, cfg)
	require.Equal(t, 1, a.Catalog().Len())
	old := a.Catalog()

	writeTaxonomy(t, dir, []catalog.CategoryDef{
		{Category: "General", Symptoms: []string{"Fever"}},
		{Category: "Skin", Symptoms: []string{"Rash"}},
	})
	require.NoError(t, a.ReloadTaxonomy())
	assert.Equal(t, 2, a.Catalog().Len())
	assert.Equal(t, 1, old.Len(), "reload must not mutate a catalog already handed out")

	// A broken file keeps the last good catalog.
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.CategoriesFile), []byte("[{"), 0644))
	assert.Error(t, a.ReloadTaxonomy())
	assert.Equal(t, 2, a.Catalog().Len())
}

func TestReloadTaxonomy_EmbeddedIsNoop(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	before := a.Catalog()

	require.NoError(t, a.ReloadTaxonomy())
	assert.Same(t, before, a.Catalog())
}

func TestStart_ServesAndHotReloads(t *testing.T) {
	dir := t.TempDir()
	writeTaxonomy(t, dir, []catalog.CategoryDef{
		{Category: "General", Symptoms: []string{"Fever"}},
	})
	cfg := testConfig(t)
	cfg.TaxonomyDir = dir
	a := newTestApp(t, cfg)
	require.NoError(t, a.Start())

	data, err := os.ReadFile(a.Paths.PortFile)
	require.NoError(t, err)
	assert.Equal(t, a.WebServer.Addr(), string(data))

	resp, err := http.Get(a.WebServer.URL() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	writeTaxonomy(t, dir, []catalog.CategoryDef{
		{Category: "General", Symptoms: []string{"Fever"}},
		{Category: "Skin", Symptoms: []string{"Rash", "Itching"}},
	})
	assert.Eventually(t, func() bool {
		return a.Catalog().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, a.Stop())
	_, err = os.Stat(a.Paths.PortFile)
	assert.True(t, os.IsNotExist(err))
}
