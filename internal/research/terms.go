// Package research derives search terms from a case and gathers supporting
// legal sources for them from Exa.
package research

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/justicejet/defensepack/internal/model"
)

const (
	// MaxTerms is the hard ceiling on research terms per request.
	MaxTerms = 5

	// MaxExtractedTerms bounds the citations pulled from document text.
	MaxExtractedTerms = 3
)

// citationPattern matches statute-shaped tokens such as "section 1161",
// "Cal. 1946" or "§ 1942".
var citationPattern = regexp.MustCompile(`(?i)\b(statute|section|code|USC|CFR|Cal\.|Civ\.|Code|§)\s*\d+`)

// phrases are the fixed per-case-type research phrases; %s is the
// jurisdiction code.
var phrases = map[model.CaseType][]string{
	model.CaseTypeEviction: {
		"%s eviction defense",
		"%s landlord tenant law",
		"%s habitability defense",
		"%s improper service eviction",
		"%s rent control ordinance",
	},
	model.CaseTypeDebt: {
		"%s debt collection defense",
		"%s FDCPA violations",
		"%s debt validation requirements",
		"%s statute of limitations debt",
	},
	model.CaseTypeWage: {
		"%s wage theft claims",
		"%s overtime violations",
		"%s FLSA defense",
		"%s employee classification",
	},
}

var genericPhrases = []string{
	"%s civil defense",
	"%s consumer protection",
	"%s legal aid defense",
}

// Terms derives the research terms for a case using the default limits.
func Terms(text string, jurisdiction model.Jurisdiction, caseType model.CaseType) []string {
	return DeriveTerms(text, jurisdiction, caseType, MaxTerms, MaxExtractedTerms)
}

// DeriveTerms returns the fixed phrases for caseType followed by up to
// maxExtracted citations found in text. Terms are de-duplicated
// case-insensitively and the list never exceeds maxTerms, which is itself
// clamped to MaxTerms.
func DeriveTerms(text string, jurisdiction model.Jurisdiction, caseType model.CaseType, maxTerms, maxExtracted int) []string {
	if maxTerms <= 0 || maxTerms > MaxTerms {
		maxTerms = MaxTerms
	}
	maxExtracted = max(maxExtracted, 0)

	tmpl, ok := phrases[caseType]
	if !ok {
		tmpl = genericPhrases
	}

	seen := make(map[string]bool)
	terms := make([]string, 0, len(tmpl)+maxExtracted)
	add := func(term string) bool {
		key := strings.ToLower(term)
		if seen[key] {
			return false
		}
		seen[key] = true
		terms = append(terms, term)
		return true
	}

	for _, p := range tmpl {
		add(fmt.Sprintf(p, jurisdiction))
	}

	extracted := 0
	for _, m := range citationPattern.FindAllString(text, -1) {
		if extracted >= maxExtracted {
			break
		}
		if add(m) {
			extracted++
		}
	}

	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	return terms
}
