package report

import (
	"fmt"
	"strings"
	"time"
)

// Format renders r as plain text with one section per part of the report.
// Empty sections are omitted.
func Format(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Report %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("Created: %s\n", r.CreatedAt.UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Input:   %s", r.Kind))
	if r.AttachmentName != "" {
		sb.WriteString(fmt.Sprintf(" (%s, %s)", r.AttachmentName, r.AttachmentType))
	}
	sb.WriteString("\n")
	if r.Urgency != "" {
		sb.WriteString(fmt.Sprintf("Urgency: %s\n", strings.ToUpper(string(r.Urgency))))
	}

	if r.Input != "" {
		section(&sb, "Reported symptoms")
		sb.WriteString("  " + r.Input + "\n")
	}

	if r.Summary != "" {
		section(&sb, "Summary")
		sb.WriteString("  " + r.Summary + "\n")
	}

	if len(r.Findings) > 0 {
		section(&sb, "Findings")
		for _, f := range r.Findings {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", f.Category, strings.Join(f.Symptoms, ", ")))
		}
	}

	if len(r.Conditions) > 0 {
		section(&sb, "Possible conditions")
		for _, c := range r.Conditions {
			sb.WriteString(fmt.Sprintf("  - %s (%s likelihood)", c.Name, c.Likelihood))
			if c.Rationale != "" {
				sb.WriteString(": " + c.Rationale)
			}
			sb.WriteString("\n")
		}
	}

	if len(r.Recommendations) > 0 {
		section(&sb, "Recommendations")
		for _, rec := range r.Recommendations {
			sb.WriteString("  - " + rec + "\n")
		}
	}

	if r.Disclaimer != "" {
		sb.WriteString("\n" + r.Disclaimer + "\n")
	}

	return sb.String()
}

func section(sb *strings.Builder, title string) {
	sb.WriteString("\n" + title + "\n")
}
