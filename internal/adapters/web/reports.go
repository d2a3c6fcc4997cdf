package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/corey/medreport/internal/ports"
)

// bodyLimit bounds the analyze request body: the base64 attachment
// (4 bytes per 3) plus room for the symptom text.
func (s *Server) bodyLimit() int64 {
	return int64(s.maxUploadBytes)/3*4 + 4 + 1<<20
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit())

	var params AnalyzeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			writeError(w, err)
			return
		}
		writeError(w, fmt.Errorf("%w: decode body: %v", ports.ErrInvalidInput, err))
		return
	}

	req := ports.AnalysisRequest{Symptoms: params.Symptoms, Attachment: params.Attachment}
	rep, err := s.backend.Analyze(r.Context(), req, params.Selected)
	if err != nil {
		log.Warn().Err(err).Int("status", statusFor(err)).Msg("analyze failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.backend.Reports()
	if err != nil {
		writeError(w, err)
		return
	}
	result := ReportsResult{Reports: make([]ReportSummary, len(reports)), Count: len(reports)}
	for i, rep := range reports {
		result.Reports[i] = ReportSummary{
			ID:        rep.ID,
			Title:     rep.Title(),
			Kind:      rep.Kind,
			Urgency:   rep.Urgency,
			CreatedAt: rep.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.backend.Report(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteReport(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
