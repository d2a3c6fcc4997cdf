package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
)

// Backend is what the server needs from the application.
type Backend interface {
	Catalog() *catalog.Catalog
	Search(q string, categories []string) ([]query.Group, error)
	Analyze(ctx context.Context, req ports.AnalysisRequest, selected []string) (*report.Report, error)
	Reports() ([]*report.Report, error)
	Report(id string) (*report.Report, error)
	DeleteReport(id string) error
}

// Server serves the picker page and JSON API over HTTP.
type Server struct {
	backend  Backend
	listener net.Listener
	httpSrv  *http.Server
	addr     string
	started  time.Time
	stopOnce sync.Once

	maxUploadBytes int
	portFilePath   string // <data>/run/http.port
}

// NewServer creates an HTTP server. The bound address is written to
// portFilePath for discovery; an empty path disables that.
func NewServer(backend Backend, portFilePath string, maxUploadBytes int) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = ports.DefaultMaxAttachmentBytes
	}
	return &Server{
		backend:        backend,
		portFilePath:   portFilePath,
		maxUploadBytes: maxUploadBytes,
		started:        time.Now(),
	}
}

// Handler returns the routed API without binding a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/synonyms", s.handleSynonyms)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/reports", s.handleReports)
	mux.HandleFunc("GET /api/reports/{id}", s.handleReport)
	mux.HandleFunc("DELETE /api/reports/{id}", s.handleDeleteReport)
	return mux
}

// Start begins listening on addr ("host:port"; port 0 picks a free one).
// Writes the bound address to the port file.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.addr = ln.Addr().String()
	s.started = time.Now()

	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.portFilePath != "" {
		if err := os.WriteFile(s.portFilePath, []byte(s.addr), 0644); err != nil {
			log.Warn().Err(err).Str("path", s.portFilePath).Msg("write port file")
		}
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("addr", s.addr).Msg("http server listening")
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.portFilePath != "" {
			os.Remove(s.portFilePath)
		}
	})
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.addr
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return "http://" + s.addr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.backend.Catalog().Stats()
	writeJSON(w, http.StatusOK, HealthResult{
		Status:     "ok",
		Categories: st.Categories,
		Symptoms:   st.UniqueSymptoms,
		Synonyms:   st.Synonyms,
		Uptime:     time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.backend.Catalog().Categories()
	result := CategoriesResult{
		Categories: make([]CategoryInfo, len(cats)),
		Count:      len(cats),
	}
	for i, c := range cats {
		result.Categories[i] = CategoryInfo{ID: c.ID, Symptoms: c.Symptoms}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	groups, err := s.backend.Search(q, r.URL.Query()["category"])
	if err != nil {
		writeError(w, err)
		return
	}
	count := 0
	for _, g := range groups {
		count += len(g.Matches)
	}
	writeJSON(w, http.StatusOK, SearchResult{Query: q, Groups: groups, Count: count})
}

func (s *Server) handleSynonyms(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("symptom")
	c := s.backend.Catalog()
	if !c.HasSymptom(name) {
		writeJSON(w, http.StatusNotFound, ErrorResult{Error: fmt.Sprintf("unknown symptom %q", name)})
		return
	}
	writeJSON(w, http.StatusOK, SynonymsResult{
		Symptom:    name,
		Synonyms:   c.Synonyms(name),
		Categories: c.CategoriesOf(name),
	})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain and provider errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ErrorResult{Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ports.ErrInvalidInput), errors.Is(err, query.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, ports.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ports.ErrSafetyBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrUnauthorized), errors.Is(err, ports.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
