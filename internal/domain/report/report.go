// Package report defines the structured clinical report produced by an analysis
// and its plain-text rendering.
package report

import (
	"time"
)

// InputKind describes what the user submitted for analysis.
type InputKind string

const (
	KindSymptoms  InputKind = "symptoms"
	KindLabReport InputKind = "lab_report"
	KindImage     InputKind = "image"
)

// Urgency is the recommended level of care.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyModerate  Urgency = "moderate"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// Rank orders urgencies from least to most severe. Unknown values rank 0.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyModerate:
		return 2
	case UrgencyHigh:
		return 3
	case UrgencyEmergency:
		return 4
	}
	return 0
}

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	return u.Rank() > 0
}

// DefaultDisclaimer is attached to every report.
const DefaultDisclaimer = "This report is generated automatically and is not a diagnosis. " +
	"Consult a qualified healthcare professional about any symptoms."

// Finding groups the reported symptoms of one body system.
type Finding struct {
	Category string   `json:"category"`
	Symptoms []string `json:"symptoms"`
}

// Condition is one possible explanation for the findings.
type Condition struct {
	Name       string `json:"name"`
	Likelihood string `json:"likelihood"` // "low", "medium", "high"
	Rationale  string `json:"rationale,omitempty"`
}

// Report is the structured result of one analysis.
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      InputKind `json:"kind"`

	Input          string `json:"input"`
	AttachmentName string `json:"attachment_name,omitempty"`
	AttachmentType string `json:"attachment_type,omitempty"`

	Summary         string      `json:"summary"`
	Urgency         Urgency     `json:"urgency"`
	Findings        []Finding   `json:"findings"`
	Conditions      []Condition `json:"conditions"`
	Recommendations []string    `json:"recommendations"`
	Disclaimer      string      `json:"disclaimer"`
}

// Title is a short one-line label for listings.
func (r *Report) Title() string {
	s := r.Summary
	if s == "" {
		s = r.Input
	}
	if s == "" {
		s = r.AttachmentName
	}
	const max = 60
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max-1]) + "…"
	}
	return s
}
