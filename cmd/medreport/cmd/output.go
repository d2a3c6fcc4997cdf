package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/report"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorRed     = "\033[31m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// useColor is resolved once per invocation in the root command.
var useColor bool

func paint(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colorReset
}

// formatGroups formats search results for terminal display.
//
//	⚡ 3 symptoms in 2 categories │ "fev"
//	  General
//	    Fever                   80
//	  Skin ★
//	    Rash
func formatGroups(q string, groups []query.Group) string {
	total := 0
	for _, g := range groups {
		total += len(g.Matches)
	}

	var sb strings.Builder
	header := fmt.Sprintf("⚡ %d symptoms in %d categories", total, len(groups))
	sb.WriteString(paint(colorBold, header))
	if strings.TrimSpace(q) != "" {
		sb.WriteString(fmt.Sprintf(" │ %q", q))
	}
	sb.WriteString("\n")

	width := 0
	for _, g := range groups {
		for _, m := range g.Matches {
			if n := len([]rune(m.Symptom)); n > width {
				width = n
			}
		}
	}

	for _, g := range groups {
		sb.WriteString("  " + paint(colorCyan, g.Category))
		if g.Shortcut() {
			sb.WriteString(" " + paint(colorMagenta, "★"))
		}
		sb.WriteString("\n")
		for _, m := range g.Matches {
			if m.Score == 0 {
				sb.WriteString(fmt.Sprintf("    %s\n", m.Symptom))
				continue
			}
			pad := strings.Repeat(" ", width-len([]rune(m.Symptom)))
			sb.WriteString(fmt.Sprintf("    %s%s  %s\n", m.Symptom, pad, paint(colorGray, fmt.Sprintf("%3d", m.Score))))
		}
	}
	return sb.String()
}

// formatCategories lists the catalog's categories with their symptom counts.
func formatCategories(c *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d categories", c.Len())) + "\n")
	for _, cat := range c.Categories() {
		sb.WriteString(fmt.Sprintf("  %s %s\n", paint(colorCyan, cat.ID), paint(colorGray, fmt.Sprintf("(%d)", len(cat.Symptoms)))))
	}
	return sb.String()
}

// formatStats summarizes a validated taxonomy and lists its orphan synonym keys.
func formatStats(source string, st catalog.Stats, orphans []string) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⚡ taxonomy "+source) + "\n")
	sb.WriteString(fmt.Sprintf("  Categories:  %d\n", st.Categories))
	sb.WriteString(fmt.Sprintf("  Symptoms:    %d (%d entries)\n", st.UniqueSymptoms, st.SymptomEntries))
	sb.WriteString(fmt.Sprintf("  Synonyms:    %d\n", st.Synonyms))
	if len(orphans) == 0 {
		sb.WriteString(fmt.Sprintf("  Orphans:     %s\n", paint(colorGreen, "none")))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("  Orphans:     %s\n", paint(colorYellow, fmt.Sprintf("%d", len(orphans)))))
	for _, o := range orphans {
		sb.WriteString(fmt.Sprintf("    %s\n", o))
	}
	return sb.String()
}

// urgencyColor maps an urgency level to its display color.
func urgencyColor(u report.Urgency) string {
	switch u {
	case report.UrgencyEmergency:
		return colorRed + colorBold
	case report.UrgencyHigh:
		return colorRed
	case report.UrgencyModerate:
		return colorYellow
	default:
		return colorGreen
	}
}

// formatReport renders one report with a colored urgency banner.
func formatReport(r *report.Report) string {
	var sb strings.Builder
	banner := fmt.Sprintf("⚡ %s │ urgency %s", r.Title(), strings.ToUpper(string(r.Urgency)))
	sb.WriteString(paint(urgencyColor(r.Urgency), banner) + "\n")
	sb.WriteString(paint(colorGray, fmt.Sprintf("  %s │ %s", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"))) + "\n\n")
	sb.WriteString(report.Format(r))
	return sb.String()
}

// formatReportList renders saved reports newest first, one per line.
func formatReportList(reports []*report.Report) string {
	if len(reports) == 0 {
		return "⚡ no saved reports\n"
	}
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d reports", len(reports))) + "\n")
	for _, r := range reports {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			paint(colorGray, r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			paint(urgencyColor(r.Urgency), fmt.Sprintf("%-9s", r.Urgency)),
			r.Title()))
	}
	return sb.String()
}
