package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
)

// mockBackend implements Backend for testing.
type mockBackend struct {
	cat        *catalog.Catalog
	analyzeErr error
	lastReq    ports.AnalysisRequest
	lastPicked []string
	reports    map[string]*report.Report
}

func (m *mockBackend) Catalog() *catalog.Catalog { return m.cat }

func (m *mockBackend) Search(q string, categories []string) ([]query.Group, error) {
	for _, id := range categories {
		if id != catalog.All && !m.cat.HasCategory(id) {
			return nil, fmt.Errorf("%w: %q", query.ErrUnknownCategory, id)
		}
	}
	var active query.CategoryFilter
	if len(categories) > 0 {
		active = allowList(categories)
	}
	return query.FilterAndRank(m.cat, q, active), nil
}

func (m *mockBackend) Analyze(ctx context.Context, req ports.AnalysisRequest, selected []string) (*report.Report, error) {
	m.lastReq = req
	m.lastPicked = selected
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	r := &report.Report{
		ID:              "r1",
		CreatedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Kind:            req.Kind(),
		Input:           req.Symptoms,
		Summary:         "1 symptom recognized (general); urgency low.",
		Urgency:         report.UrgencyLow,
		Findings:        []report.Finding{},
		Conditions:      []report.Condition{},
		Recommendations: []string{"Rest"},
		Disclaimer:      report.DefaultDisclaimer,
	}
	m.reports[r.ID] = r
	return r, nil
}

func (m *mockBackend) Reports() ([]*report.Report, error) {
	out := []*report.Report{}
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockBackend) Report(id string) (*report.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrReportNotFound, id)
	}
	return r, nil
}

func (m *mockBackend) DeleteReport(id string) error {
	delete(m.reports, id)
	return nil
}

type allowList []string

func (a allowList) Allows(id string) bool {
	for _, cur := range a {
		if cur == id || cur == catalog.All {
			return true
		}
	}
	return false
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.CategoryDef{
		{Category: "General", Symptoms: []string{"Fever", "Fatigue", "Chills"}},
		{Category: "Respiratory", Symptoms: []string{"Cough", "Shortness of breath"}},
	}, map[string][]string{
		"Fever": {"high temperature"},
	}, catalog.Options{})
	require.NoError(t, err)
	return c
}

func setupTestServer(t *testing.T) (*httptest.Server, *mockBackend) {
	t.Helper()
	b := &mockBackend{cat: newTestCatalog(t), reports: map[string]*report.Report{}}
	srv := NewServer(b, "", 1024)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, b
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result HealthResult
	resp := getJSON(t, ts.URL+"/api/health", &result)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, 2, result.Categories)
	assert.Equal(t, 5, result.Symptoms)
	assert.Equal(t, 1, result.Synonyms)
}

func TestCategoriesEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result CategoriesResult
	resp := getJSON(t, ts.URL+"/api/categories", &result)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, "General", result.Categories[0].ID)
	assert.Equal(t, []string{"Fever", "Fatigue", "Chills"}, result.Categories[0].Symptoms)
}

func TestSearchEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result SearchResult
	resp := getJSON(t, ts.URL+"/api/search?q=fev", &result)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "fev", result.Query)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, "General", result.Groups[0].Category)
	assert.Equal(t, "Fever", result.Groups[0].Matches[0].Symptom)
	assert.Equal(t, 80, result.Groups[0].Matches[0].Score)
	assert.Equal(t, 1, result.Count)
}

func TestSearchEndpoint_EmptyQueryReturnsEverything(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result SearchResult
	getJSON(t, ts.URL+"/api/search", &result)

	assert.Len(t, result.Groups, 2)
	assert.Equal(t, 5, result.Count)
}

func TestSearchEndpoint_CategoryFilter(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result SearchResult
	getJSON(t, ts.URL+"/api/search?category=Respiratory", &result)

	require.Len(t, result.Groups, 1)
	assert.Equal(t, "Respiratory", result.Groups[0].Category)
}

func TestSearchEndpoint_UnknownCategory(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result ErrorResult
	resp := getJSON(t, ts.URL+"/api/search?category=Nope", &result)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result.Error, "Nope")
}

func TestSynonymsEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	var result SynonymsResult
	resp := getJSON(t, ts.URL+"/api/synonyms?symptom=Fever", &result)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"high temperature"}, result.Synonyms)
	assert.Equal(t, []string{"General"}, result.Categories)

	resp = getJSON(t, ts.URL+"/api/synonyms?symptom=Nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func postAnalyze(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	ts, b := setupTestServer(t)

	resp := postAnalyze(t, ts, `{"symptoms":"tired","selected":["Fever"]}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var rep report.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "r1", rep.ID)
	assert.Equal(t, report.UrgencyLow, rep.Urgency)
	assert.Equal(t, "tired", b.lastReq.Symptoms)
	assert.Equal(t, []string{"Fever"}, b.lastPicked)
}

func TestAnalyzeEndpoint_BadJSON(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp := postAnalyze(t, ts, `{"symptoms":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeEndpoint_BodyTooLarge(t *testing.T) {
	b := &mockBackend{cat: newTestCatalog(t), reports: map[string]*report.Report{}}
	srv := NewServer(b, "", 1024)

	body := `{"symptoms":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, b.lastReq.Symptoms)
}

func TestAnalyzeEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: empty", ports.ErrInvalidInput), http.StatusBadRequest},
		{ports.ErrQuotaExceeded, http.StatusTooManyRequests},
		{ports.ErrUnavailable, http.StatusServiceUnavailable},
		{ports.ErrSafetyBlocked, http.StatusUnprocessableEntity},
		{ports.ErrUnauthorized, http.StatusBadGateway},
		{ports.ErrMalformedResponse, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			ts, b := setupTestServer(t)
			b.analyzeErr = tt.err

			resp := postAnalyze(t, ts, `{"symptoms":"fever"}`)
			assert.Equal(t, tt.want, resp.StatusCode)

			var result ErrorResult
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tt.err.Error(), result.Error)
		})
	}
}

func TestReportEndpoints(t *testing.T) {
	ts, _ := setupTestServer(t)
	postAnalyze(t, ts, `{"symptoms":"fever"}`)

	var list ReportsResult
	resp := getJSON(t, ts.URL+"/api/reports", &list)
	assert.Equal(t, 200, resp.StatusCode)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "r1", list.Reports[0].ID)
	assert.Equal(t, "1 symptom recognized (general); urgency low.", list.Reports[0].Title)

	var rep report.Report
	resp = getJSON(t, ts.URL+"/api/reports/r1", &rep)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "fever", rep.Input)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/reports/r1", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	resp = getJSON(t, ts.URL+"/api/reports/r1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPickerHTML(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/static/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	ct := resp.Header.Get("Content-Type")
	assert.True(t, strings.HasPrefix(ct, "text/html"), "content-type should be text/html, got %s", ct)
}

func TestStartStop_PortFile(t *testing.T) {
	portFile := filepath.Join(t.TempDir(), "http.port")
	srv := NewServer(&mockBackend{cat: newTestCatalog(t), reports: map[string]*report.Report{}}, portFile, 0)

	require.NoError(t, srv.Start("127.0.0.1:0"))
	data, err := os.ReadFile(portFile)
	require.NoError(t, err)
	assert.Equal(t, srv.Addr(), string(data))

	var result HealthResult
	getJSON(t, srv.URL()+"/api/health", &result)
	assert.Equal(t, "ok", result.Status)

	srv.Stop()
	srv.Stop()
	_, err = os.Stat(portFile)
	assert.True(t, os.IsNotExist(err))
}
