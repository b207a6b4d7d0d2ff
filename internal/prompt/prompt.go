// Package prompt renders the defense pack and analysis prompts.
package prompt

import (
	"fmt"

	"github.com/justicejet/defensepack/internal/model"
)

// TruncationMarker is appended to document text cut at the input budget.
const TruncationMarker = "\n\n[Text truncated due to length limits]"

// Input budgets, in characters, for the two call sites.
const (
	PackMaxInput     = 80000
	AnalysisMaxInput = 100000
)

// Truncate returns text unchanged when it has at most max characters;
// otherwise the first max characters followed by TruncationMarker.
// A non-positive max disables truncation.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + TruncationMarker
}

// PackSystemPrompt is the system message for every defense pack job.
const PackSystemPrompt = "You are JusticeJet, a legal AI assistant creating concise defense materials for pro bono attorneys. Generate practical legal analysis tools - fact patterns, issue spotters, defense strategies, and deadline calendars. Follow formatting exactly. Be brief, actionable, and legally focused."

// Template verbs: %[1]s document text, %[2]s research context,
// %[3]s jurisdiction, %[4]s case type.

const flashcardsTemplate = `Create a structured fact pattern from these case documents with legal research context. Format as:

## Case Timeline
**Date** | **Event** | **Significance**

## Parties
**Plaintiff:** [Name and role]
**Defendant:** [Client name and role]
**Key Witnesses:** [If any]

## Financial Details
**Amount Claimed:** $X
**Fees/Costs:** $X
**Client Income:** [If disclosed]

## Key Facts
• Most important fact 1
• Most important fact 2
• [Continue with 8-10 key facts]

## Legal Research Context
%[2]s

Focus on: Dates, amounts, procedural steps, and legally significant facts. Keep concise and organized.

Case Documents: %[1]s`

const mcqTemplate = `Identify and analyze legal issues in these case documents with current legal research. Format as:

## Primary Issues
**Issue 1:** [Legal issue name]
• **Confidence:** High/Medium/Low
• **Legal Basis:** [Statute/regulation]
• **Evidence:** [Supporting facts]
• **Case Law Support:** [From research below]

**Issue 2:** [Next issue]
• **Confidence:** High/Medium/Low
• **Legal Basis:** [Statute/regulation]  
• **Evidence:** [Supporting facts]
• **Case Law Support:** [From research below]

[Continue for 5-8 issues]

## Potential Defenses
• **Procedural:** Service defects, jurisdiction, statute of limitations
• **Substantive:** FDCPA violations, habitability, discriminatory practices
• **Affirmative:** Counterclaims, fee-shifting statutes

## Current Legal Research
%[2]s

Focus on: Civil defense matters (evictions, debt, wage theft, benefits, immigration). Rate confidence based on strength of evidence and recent case law.

Case Documents: %[1]s`

const summaryTemplate = `Create a defense strategy checklist from these case documents with current legal precedents. Format as:

## Immediate Actions (0-7 days)
• Review service of process for defects
• Check jurisdiction and venue issues
• Identify statute of limitations problems
• [Add 2-3 more immediate items based on research]

## Discovery & Investigation (1-4 weeks)
• Request documents from opposing party
• Interview client about [specific areas]
• Research applicable defenses
• [Add 2-3 more discovery items]

## Motion Practice (2-6 weeks)
• File motion to dismiss if grounds exist
• Consider counterclaims for [specific violations]
• Request fee-shifting under [applicable statute]
• [Add 1-2 more motions based on case law]

## Settlement Strategy
• Leverage identified violations
• Calculate potential fee awards
• Prepare demand letter highlighting [key issues]

## Legal Precedents & Research
%[2]s

Focus on: Practical next steps for civil defense cases with current legal precedents. Be specific and actionable.

Case Documents: %[1]s`

const definitionsTemplate = `Create a deadline calendar from these case documents with jurisdiction-specific rules. Format as:

## Critical Deadlines

**[Date]** - **[Action Required]** 
*Statutory basis: [Citation]*
*Jurisdiction: %[3]s*

**[Date]** - **[Next Action]**
*Statutory basis: [Citation]*
*Jurisdiction: %[3]s*

[Continue for all identified deadlines]

## Deadline Calculation Notes
• Answer due: [X] days from service (%[3]s rules)
• Discovery cutoff: [X] days before trial
• Motion deadlines: [Rule/statute reference]
• Appeal window: [X] days from judgment

## Jurisdictional Research
%[2]s

## Missing Information
• Service date unclear - verify with client
• Court rules may modify standard deadlines
• [Other gaps in timeline]

Focus on: Statutory and court-imposed deadlines for %[3]s %[4]s cases. Include basis for each deadline. Flag missing dates that need verification.

Case Documents: %[1]s`

var templates = map[model.JobName]string{
	model.JobFlashcards:  flashcardsTemplate,
	model.JobMCQ:         mcqTemplate,
	model.JobSummary:     summaryTemplate,
	model.JobDefinitions: definitionsTemplate,
}

// Build renders one PromptJob per job name, in model.JobNames order.
// Document text and research context are interpolated verbatim.
func Build(req model.CaseRequest, researchContext string) []model.PromptJob {
	names := model.JobNames()
	jobs := make([]model.PromptJob, 0, len(names))
	for _, name := range names {
		jobs = append(jobs, model.PromptJob{
			Name:   name,
			Prompt: render(templates[name], req, researchContext),
		})
	}
	return jobs
}

func render(tmpl string, req model.CaseRequest, researchContext string) string {
	return fmt.Sprintf(tmpl, req.DocumentText, researchContext, req.Jurisdiction, req.CaseType)
}
