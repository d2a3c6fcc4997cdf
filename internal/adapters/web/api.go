package web

import (
	"time"

	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
)

// HealthResult is the response for GET /api/health.
type HealthResult struct {
	Status     string `json:"status"`
	Categories int    `json:"categories"`
	Symptoms   int    `json:"symptoms"`
	Synonyms   int    `json:"synonyms"`
	Uptime     string `json:"uptime"`
}

// CategoryInfo is one category in GET /api/categories.
type CategoryInfo struct {
	ID       string   `json:"id"`
	Symptoms []string `json:"symptoms"`
}

// CategoriesResult is the response for GET /api/categories.
type CategoriesResult struct {
	Categories []CategoryInfo `json:"categories"`
	Count      int            `json:"count"`
}

// SearchResult is the response for GET /api/search.
type SearchResult struct {
	Query  string        `json:"query"`
	Groups []query.Group `json:"groups"`
	Count  int           `json:"count"` // total symptoms across groups
}

// SynonymsResult is the response for GET /api/synonyms.
type SynonymsResult struct {
	Symptom    string   `json:"symptom"`
	Synonyms   []string `json:"synonyms"`
	Categories []string `json:"categories"`
}

// AnalyzeParams is the body of POST /api/analyze.
type AnalyzeParams struct {
	Symptoms   string            `json:"symptoms"`
	Attachment *ports.Attachment `json:"attachment,omitempty"`
	Selected   []string          `json:"selected,omitempty"`
}

// ReportSummary is one row of GET /api/reports.
type ReportSummary struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Kind      report.InputKind `json:"kind"`
	Urgency   report.Urgency   `json:"urgency"`
	CreatedAt time.Time        `json:"created_at"`
}

// ReportsResult is the response for GET /api/reports.
type ReportsResult struct {
	Reports []ReportSummary `json:"reports"`
	Count   int             `json:"count"`
}

// ErrorResult is the body of every non-2xx API response.
type ErrorResult struct {
	Error string `json:"error"`
}
