package model

import "encoding/json"

// JobName identifies one section of a defense pack.
type JobName string

const (
	JobFlashcards  JobName = "flashcards"  // case timeline and fact pattern
	JobMCQ         JobName = "mcq"         // legal issues with confidence ratings
	JobSummary     JobName = "summary"     // defense strategy checklist
	JobDefinitions JobName = "definitions" // deadline calendar
)

// JobNames returns every job in the fixed order they are generated.
func JobNames() []JobName {
	return []JobName{JobFlashcards, JobMCQ, JobSummary, JobDefinitions}
}

// PromptJob is a rendered prompt for one defense pack section.
type PromptJob struct {
	Name   JobName
	Prompt string
}

// Hit is one search result returned for a research term.
type Hit struct {
	Title      string   `json:"title" yaml:"title"`
	URL        string   `json:"url" yaml:"url"`
	Excerpt    string   `json:"text" yaml:"text"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Score      *float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// ResearchResult groups the hits found for one research term. Terms whose
// search failed or returned nothing never produce a ResearchResult.
type ResearchResult struct {
	Term string `json:"term" yaml:"term"`
	Hits []Hit  `json:"results" yaml:"results"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// Add merges token usage from another instance.
func (t *TokenUsage) Add(other TokenUsage) {
	t.InputTokens += other.InputTokens
	t.OutputTokens += other.OutputTokens
	t.Cost += other.Cost
}

// CompletionResult is the terminal outcome of one prompt job.
type CompletionResult struct {
	Job   JobName
	Text  string
	Model string
	Usage TokenUsage
}

// DefensePack is the combined output of one pipeline run.
type DefensePack struct {
	ID       string
	Sections map[JobName]string
	Research []ResearchResult
	Usage    TokenUsage
}

// MarshalJSON flattens the pack into the wire shape consumed by the web
// client: one top-level key per job plus "legalResearch".
func (p DefensePack) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// MarshalYAML uses the same flattened shape as MarshalJSON.
func (p DefensePack) MarshalYAML() (any, error) {
	return p.wire(), nil
}

func (p DefensePack) wire() map[string]any {
	out := make(map[string]any, len(p.Sections)+1)
	for name, text := range p.Sections {
		out[string(name)] = text
	}
	research := p.Research
	if research == nil {
		research = []ResearchResult{}
	}
	out["legalResearch"] = research
	return out
}

// QueryResult is the raw search output for one expanded query.
type QueryResult struct {
	Query string `json:"query" yaml:"query"`
	Hits  []Hit  `json:"results" yaml:"results"`
}

// SearchResponse is the result of a free-text legal search.
type SearchResponse struct {
	Results []QueryResult `json:"searchResults" yaml:"searchResults"`
	Total   int           `json:"totalResults" yaml:"totalResults"`
}
