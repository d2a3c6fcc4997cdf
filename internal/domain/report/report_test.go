package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleReport() *Report {
	return &Report{
		ID:        "5f1c1a8e-0000-4000-8000-000000000001",
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Kind:      KindSymptoms,
		Input:     "feverish since Monday, Cough",
		Summary:   "Respiratory symptoms with fever.",
		Urgency:   UrgencyModerate,
		Findings: []Finding{
			{Category: "General", Symptoms: []string{"Fever"}},
			{Category: "Respiratory", Symptoms: []string{"Cough"}},
		},
		Conditions: []Condition{
			{Name: "Viral respiratory infection", Likelihood: "medium", Rationale: "fever with cough"},
		},
		Recommendations: []string{"Rest and drink fluids."},
		Disclaimer:      DefaultDisclaimer,
	}
}

func TestFormat_AllSections(t *testing.T) {
	out := Format(sampleReport())

	assert.Contains(t, out, "Report 5f1c1a8e-0000-4000-8000-000000000001\n")
	assert.Contains(t, out, "Created: 2026-03-01T09:30:00Z\n")
	assert.Contains(t, out, "Urgency: MODERATE\n")
	assert.Contains(t, out, "  General: Fever\n")
	assert.Contains(t, out, "  - Viral respiratory infection (medium likelihood): fever with cough\n")
	assert.Contains(t, out, "  - Rest and drink fluids.\n")
	assert.True(t, strings.HasSuffix(out, DefaultDisclaimer+"\n"))

	// Sections appear in a fixed order.
	order := []string{"Reported symptoms", "Summary", "Findings", "Possible conditions", "Recommendations"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, "\n"+s+"\n")
		assert.Greater(t, i, last, "section %s out of order", s)
		last = i
	}
}

func TestFormat_OmitsEmptySections(t *testing.T) {
	r := &Report{ID: "x", Kind: KindImage, AttachmentName: "rash.png", AttachmentType: "image/png"}
	out := Format(r)
	assert.Contains(t, out, "Input:   image (rash.png, image/png)\n")
	assert.NotContains(t, out, "Findings")
	assert.NotContains(t, out, "Urgency")
	assert.NotContains(t, out, "Recommendations")
}

func TestUrgency_Rank(t *testing.T) {
	assert.Less(t, UrgencyLow.Rank(), UrgencyModerate.Rank())
	assert.Less(t, UrgencyModerate.Rank(), UrgencyHigh.Rank())
	assert.Less(t, UrgencyHigh.Rank(), UrgencyEmergency.Rank())
	assert.False(t, Urgency("severe").Valid())
	assert.True(t, UrgencyHigh.Valid())
}

func TestReport_Title(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "Respiratory symptoms with fever.", r.Title())

	r.Summary = ""
	assert.Equal(t, "feverish since Monday, Cough", r.Title())

	r.Input = strings.Repeat("a", 100)
	assert.Len(t, []rune(r.Title()), 60)

	assert.Equal(t, "scan.pdf", (&Report{AttachmentName: "scan.pdf"}).Title())
}
