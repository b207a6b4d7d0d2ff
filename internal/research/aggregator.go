package research

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/model"
	"github.com/justicejet/defensepack/internal/resilience"
	"github.com/justicejet/defensepack/pkg/exa"
)

// Profile controls how many hits a search requests and how they are
// trimmed before they reach the caller.
type Profile struct {
	NumResults    int
	ExcerptChars  int
	MaxHighlights int  // 0 keeps every highlight
	Ellipsis      bool // append "..." to non-empty excerpts
	KeepScore     bool
	Delay         time.Duration
	Domains       []string
}

// PackProfile is the profile used to research defense pack terms.
func PackProfile(cfg config.ResearchConfig) Profile {
	return Profile{
		NumResults:    cfg.NumResults,
		ExcerptChars:  cfg.ExcerptChars,
		MaxHighlights: cfg.MaxHighlights,
		Delay:         time.Duration(cfg.DelayMs) * time.Millisecond,
		Domains:       cfg.Domains,
	}
}

// SearchProfile is the profile used by free-text legal search.
func SearchProfile(cfg config.SearchConfig) Profile {
	return Profile{
		NumResults:   cfg.NumResults,
		ExcerptChars: cfg.ExcerptChars,
		Ellipsis:     true,
		KeepScore:    true,
		Delay:        time.Duration(cfg.DelayMs) * time.Millisecond,
		Domains:      cfg.Domains,
	}
}

// Aggregator runs one Exa search per term, sequentially.
type Aggregator struct {
	client  exa.Client
	profile Profile
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSleep replaces the delay function, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Aggregator) {
		a.sleep = fn
	}
}

// NewAggregator creates an Aggregator that searches with client.
func NewAggregator(client exa.Client, profile Profile, opts ...Option) *Aggregator {
	a := &Aggregator{
		client:  client,
		profile: profile,
		sleep:   resilience.Sleep,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Research searches every term in order. Terms whose search fails or finds
// nothing are left out of the result; failures are only logged. The
// configured delay separates consecutive searches.
func (a *Aggregator) Research(ctx context.Context, terms []string) []model.ResearchResult {
	results := make([]model.ResearchResult, 0, len(terms))
	a.each(ctx, terms, func(term string, hits []model.Hit) {
		results = append(results, model.ResearchResult{Term: term, Hits: hits})
	})
	return results
}

// Query runs the four legal-search variants of query and returns the raw
// hits per variant along with the total hit count.
func (a *Aggregator) Query(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse {
	resp := model.SearchResponse{Results: []model.QueryResult{}}
	a.each(ctx, Queries(query, jurisdiction, caseType), func(q string, hits []model.Hit) {
		resp.Results = append(resp.Results, model.QueryResult{Query: q, Hits: hits})
		resp.Total += len(hits)
	})
	return resp
}

// Queries expands a free-text legal question into its search variants.
func Queries(query string, jurisdiction model.Jurisdiction, caseType model.CaseType) []string {
	return []string{
		fmt.Sprintf("%s %s %s case law court decision", query, jurisdiction, caseType),
		fmt.Sprintf("%s statute law %s civil defense", query, jurisdiction),
		fmt.Sprintf("%s legal precedent %s recent 2023 2024", query, jurisdiction),
		fmt.Sprintf("%s defense strategy %s tenant rights eviction", caseType, jurisdiction),
	}
}

func (a *Aggregator) each(ctx context.Context, queries []string, emit func(query string, hits []model.Hit)) {
	for i, q := range queries {
		if ctx.Err() != nil {
			return
		}
		if i > 0 && a.profile.Delay > 0 {
			if err := a.sleep(ctx, a.profile.Delay); err != nil {
				return
			}
		}

		hits, err := a.search(ctx, q)
		if err != nil {
			zap.L().Warn("research: search failed",
				zap.String("term", q),
				zap.Error(err),
			)
			continue
		}
		if len(hits) == 0 {
			zap.L().Debug("research: no results", zap.String("term", q))
			continue
		}
		emit(q, hits)
	}
}

func (a *Aggregator) search(ctx context.Context, query string) ([]model.Hit, error) {
	resp, err := a.client.Search(ctx, exa.SearchRequest{
		Query:          query,
		Type:           exa.TypeNeural,
		UseAutoprompt:  true,
		NumResults:     a.profile.NumResults,
		IncludeDomains: a.profile.Domains,
		Contents:       &exa.Contents{Text: true, Highlights: true},
	})
	if err != nil {
		return nil, err
	}

	hits := make([]model.Hit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hits = append(hits, a.trim(r))
	}
	return hits, nil
}

func (a *Aggregator) trim(r exa.Result) model.Hit {
	h := model.Hit{
		Title:   r.Title,
		URL:     r.URL,
		Excerpt: truncateRunes(r.Text, a.profile.ExcerptChars),
	}
	if a.profile.Ellipsis && h.Excerpt != "" {
		h.Excerpt += "..."
	}
	h.Highlights = r.Highlights
	if n := a.profile.MaxHighlights; n > 0 && len(h.Highlights) > n {
		h.Highlights = h.Highlights[:n]
	}
	if a.profile.KeepScore {
		h.Score = r.Score
	}
	return h
}

func truncateRunes(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
