// Package offline implements ports.AnalysisProvider without a hosted model.
// It recognizes catalog symptoms (by name or synonym) in the submitted text,
// groups them by body system, grades urgency from red-flag symptoms and
// phrases, and suggests conditions from a small rule table.
//
// Output is deterministic, which also makes the provider the reference double
// for the provider contract in tests.
package offline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/corey/medreport/internal/adapters/ahocorasick"
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/match"
	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
)

// CatalogSource supplies the current catalog. The app swaps catalogs on reload.
type CatalogSource interface {
	Catalog() *catalog.Catalog
}

// Provider is the offline analysis provider. Safe for concurrent use.
type Provider struct {
	source CatalogSource

	mu    sync.Mutex
	index *phraseIndex // built lazily for the current catalog
}

var _ ports.AnalysisProvider = (*Provider)(nil)

// New creates a Provider reading symptoms from source.
func New(source CatalogSource) *Provider {
	return &Provider{source: source}
}

// Analyze builds a report from req. It never returns a provider error other
// than ErrInvalidInput, and honors ctx cancellation.
func (p *Provider) Analyze(ctx context.Context, req ports.AnalysisRequest) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(0); err != nil {
		return nil, err
	}

	c := p.source.Catalog()
	text := match.Normalize(req.Symptoms)
	var findings []report.Finding
	var found map[string]bool
	if c != nil {
		findings, found = recognize(c, p.phrases(c), text)
	} else {
		findings, found = []report.Finding{}, map[string]bool{}
	}

	r := &report.Report{
		Kind:       req.Kind(),
		Input:      strings.TrimSpace(req.Symptoms),
		Findings:   findings,
		Disclaimer: report.DefaultDisclaimer,
	}
	if req.Attachment != nil {
		r.AttachmentName = req.Attachment.Name
		r.AttachmentType = req.Attachment.MIMEType
	}

	r.Urgency = grade(text, found, len(findings))
	r.Conditions = suggest(found)
	r.Recommendations = append([]string(nil), recommendations[r.Urgency]...)
	if req.Attachment != nil {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("Share %s with your clinician; it was not interpreted offline.", req.Attachment.Name))
	}
	r.Summary = summarize(r, len(found))

	return r, nil
}

// phraseIndex is one automaton over every symptom name and synonym of a
// catalog. owners maps each pattern to the symptoms it names.
type phraseIndex struct {
	catalog *catalog.Catalog
	scanner *ahocorasick.Scanner
	owners  [][]string
}

func buildPhraseIndex(c *catalog.Catalog) *phraseIndex {
	idx := &phraseIndex{catalog: c}
	at := make(map[string]int)
	var patterns []string
	add := func(phrase, symptom string) {
		phrase = match.Normalize(phrase)
		if phrase == "" {
			return
		}
		i, ok := at[phrase]
		if !ok {
			i = len(patterns)
			at[phrase] = i
			patterns = append(patterns, phrase)
			idx.owners = append(idx.owners, nil)
		}
		for _, o := range idx.owners[i] {
			if o == symptom {
				return
			}
		}
		idx.owners[i] = append(idx.owners[i], symptom)
	}
	for _, cat := range c.Categories() {
		for _, s := range cat.Symptoms {
			add(s, s)
			for _, syn := range c.Synonyms(s) {
				add(syn, s)
			}
		}
	}
	idx.scanner = ahocorasick.NewScanner(patterns)
	return idx
}

// phrases returns the index for c, rebuilding it when the catalog changed.
func (p *Provider) phrases(c *catalog.Catalog) *phraseIndex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index == nil || p.index.catalog != c {
		p.index = buildPhraseIndex(c)
	}
	return p.index
}

// recognize finds catalog symptoms mentioned in normalized text. A symptom
// listed in several categories is reported under the first one.
func recognize(c *catalog.Catalog, idx *phraseIndex, text string) ([]report.Finding, map[string]bool) {
	findings := []report.Finding{}
	found := make(map[string]bool)
	if c == nil || text == "" {
		return findings, found
	}

	mentioned := make(map[string]bool)
	for _, m := range idx.scanner.ScanWords(text) {
		for _, s := range idx.owners[m.Pattern] {
			mentioned[s] = true
		}
	}
	if len(mentioned) == 0 {
		return findings, found
	}

	for _, cat := range c.Categories() {
		var hits []string
		for _, s := range cat.Symptoms {
			if mentioned[s] && !found[s] {
				found[s] = true
				hits = append(hits, s)
			}
		}
		if len(hits) > 0 {
			findings = append(findings, report.Finding{Category: cat.ID, Symptoms: hits})
		}
	}
	return findings, found
}

// redFlags scans for emergencyPhrases followed by highPhrases; a pattern
// index below len(emergencyPhrases) is an emergency phrase.
var redFlags = ahocorasick.NewScanner(append(append([]string(nil), emergencyPhrases...), highPhrases...))

// grade picks the highest urgency any signal supports.
func grade(text string, found map[string]bool, categories int) report.Urgency {
	emergencyPhrase, highPhrase := false, false
	for _, m := range redFlags.ScanWords(text) {
		if m.Pattern < len(emergencyPhrases) {
			emergencyPhrase = true
		} else {
			highPhrase = true
		}
	}

	if emergencyPhrase {
		return report.UrgencyEmergency
	}
	for _, s := range emergencySymptoms {
		if found[s] {
			return report.UrgencyEmergency
		}
	}
	if highPhrase {
		return report.UrgencyHigh
	}
	for _, s := range highSymptoms {
		if found[s] {
			return report.UrgencyHigh
		}
	}
	if len(found) >= 3 || categories >= 2 {
		return report.UrgencyModerate
	}
	return report.UrgencyLow
}

// suggest ranks condition rules by how many of their symptoms were found.
func suggest(found map[string]bool) []report.Condition {
	type scored struct {
		rule    conditionRule
		matched int
	}
	var candidates []scored
	for _, rule := range conditionRules {
		n := 0
		for _, s := range rule.symptoms {
			if found[s] {
				n++
			}
		}
		if n >= minRuleMatches {
			candidates = append(candidates, scored{rule, n})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].matched > candidates[j].matched
	})
	if len(candidates) > maxConditions {
		candidates = candidates[:maxConditions]
	}

	out := []report.Condition{}
	for _, c := range candidates {
		out = append(out, report.Condition{
			Name:       c.rule.name,
			Likelihood: likelihood(c.matched, len(c.rule.symptoms)),
			Rationale:  fmt.Sprintf("%s (%d of %d typical symptoms)", c.rule.rationale, c.matched, len(c.rule.symptoms)),
		})
	}
	return out
}

func summarize(r *report.Report, symptoms int) string {
	if symptoms == 0 {
		if r.AttachmentName != "" {
			return fmt.Sprintf("Received %s; no symptoms were recognized in the text.", r.AttachmentName)
		}
		return "No known symptoms were recognized in the description."
	}

	systems := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		systems[i] = strings.ToLower(f.Category)
	}
	noun := "symptom"
	if symptoms > 1 {
		noun = "symptoms"
	}
	return fmt.Sprintf("%d %s recognized (%s); urgency %s.", symptoms, noun, strings.Join(systems, ", "), r.Urgency)
}
