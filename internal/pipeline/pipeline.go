// Package pipeline orchestrates research, prompt rendering and completions
// into a defense pack.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/cost"
	"github.com/justicejet/defensepack/internal/model"
	"github.com/justicejet/defensepack/internal/prompt"
	"github.com/justicejet/defensepack/internal/research"
	"github.com/justicejet/defensepack/internal/resilience"
)

// Researcher gathers sources for research terms.
type Researcher interface {
	Research(ctx context.Context, terms []string) []model.ResearchResult
}

// Searcher runs a free-text legal search.
type Searcher interface {
	Query(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse
}

// Completer turns prompts into completions.
type Completer interface {
	Complete(ctx context.Context, job model.PromptJob) (model.CompletionResult, error)
	CompleteWithSystem(ctx context.Context, name, system, user string) (model.CompletionResult, error)
}

// Pipeline runs one defense pack, analysis or search per call. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	researcher Researcher
	searcher   Searcher
	completer  Completer
	costCalc   *cost.Calculator

	maxTerms         int
	maxExtracted     int
	maxPackInput     int
	maxAnalysisInput int
	jobDelay         time.Duration

	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSleep replaces the inter-job delay function, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Pipeline) {
		p.sleep = fn
	}
}

// WithIDGenerator replaces the pack id generator.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		p.newID = fn
	}
}

// WithCostCalculator replaces the default cost calculator.
func WithCostCalculator(c *cost.Calculator) Option {
	return func(p *Pipeline) {
		p.costCalc = c
	}
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, researcher Researcher, searcher Searcher, completer Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		researcher:       researcher,
		searcher:         searcher,
		completer:        completer,
		costCalc:         cost.NewCalculator(cost.RatesFromConfig(cfg.Pricing)),
		maxTerms:         cfg.Research.MaxTerms,
		maxExtracted:     cfg.Research.MaxExtractedTerms,
		maxPackInput:     cfg.Pack.MaxInputChars,
		maxAnalysisInput: cfg.Analysis.MaxInputChars,
		jobDelay:         time.Duration(cfg.Pack.JobDelayMs) * time.Millisecond,
		sleep:            resilience.Sleep,
		newID:            uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run builds a defense pack for req. Job failures never fail the run: each
// failed job is replaced by FallbackText so every job name is present in
// the result. An error is returned only when ctx is already done.
func (p *Pipeline) Run(ctx context.Context, req model.CaseRequest) (*model.DefensePack, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run")
	}

	pack := &model.DefensePack{
		ID:       p.newID(),
		Sections: make(map[model.JobName]string, len(model.JobNames())),
	}
	log := zap.L().With(
		zap.String("pack_id", pack.ID),
		zap.String("jurisdiction", string(req.Jurisdiction)),
		zap.String("case_type", string(req.CaseType)),
	)
	log.Info("pipeline: starting defense pack", zap.Int("document_chars", len(req.DocumentText)))
	start := time.Now()

	req.DocumentText = prompt.Truncate(req.DocumentText, p.maxPackInput)

	// Research.
	phaseStart := time.Now()
	terms := research.DeriveTerms(req.DocumentText, req.Jurisdiction, req.CaseType, p.maxTerms, p.maxExtracted)
	pack.Research = p.researcher.Research(ctx, terms)
	log.Info("pipeline: research complete",
		zap.Strings("terms", terms),
		zap.Int("results", len(pack.Research)),
		zap.Int64("duration_ms", time.Since(phaseStart).Milliseconds()),
	)

	// Jobs.
	jobs := prompt.Build(req, research.Context(pack.Research))
	var jobCost float64
	for i, job := range jobs {
		if i > 0 && p.jobDelay > 0 {
			if err := p.sleep(ctx, p.jobDelay); err != nil {
				log.Debug("pipeline: job delay interrupted", zap.String("job", string(job.Name)), zap.Error(err))
			}
		}

		jobStart := time.Now()
		res, err := p.completer.Complete(ctx, job)
		if err != nil {
			log.Error("pipeline: job failed, using fallback",
				zap.String("job", string(job.Name)),
				zap.Int64("duration_ms", time.Since(jobStart).Milliseconds()),
				zap.Error(err),
			)
			pack.Sections[job.Name] = FallbackText(job.Name)
			continue
		}

		pack.Sections[job.Name] = res.Text
		pack.Usage.Add(res.Usage)
		jobCost += p.costCalc.Completion(res.Model, res.Usage.InputTokens, res.Usage.OutputTokens)
		log.Info("pipeline: job complete",
			zap.String("job", string(job.Name)),
			zap.Int64("duration_ms", time.Since(jobStart).Milliseconds()),
		)
	}

	pack.Usage.Cost = jobCost + p.costCalc.Searches(len(terms))
	log.Info("pipeline: cost attribution",
		zap.Int("input_tokens", pack.Usage.InputTokens),
		zap.Int("output_tokens", pack.Usage.OutputTokens),
		zap.Int("searches", len(terms)),
		zap.Float64("estimated_cost_usd", pack.Usage.Cost),
	)
	log.Info("pipeline: defense pack complete", zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return pack, nil
}

// Analyze produces the single combined Rapid Defense Pack document for
// text at the given depth. Unlike Run, a failed completion is an error.
func (p *Pipeline) Analyze(ctx context.Context, text string, depth model.AnalysisDepth) (string, error) {
	text = prompt.Truncate(text, p.maxAnalysisInput)

	start := time.Now()
	res, err := p.completer.CompleteWithSystem(ctx, "analysis", prompt.AnalysisSystemPrompt, prompt.Analysis(text, depth))
	if err != nil {
		return "", eris.Wrap(err, "pipeline: analyze")
	}

	zap.L().Info("pipeline: analysis complete",
		zap.String("depth", string(depth)),
		zap.Int("input_tokens", res.Usage.InputTokens),
		zap.Int("output_tokens", res.Usage.OutputTokens),
		zap.Float64("estimated_cost_usd", p.costCalc.Completion(res.Model, res.Usage.InputTokens, res.Usage.OutputTokens)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return res.Text, nil
}

// Search runs the raw legal search for query. Failed variants are dropped.
func (p *Pipeline) Search(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse {
	resp := p.searcher.Query(ctx, query, jurisdiction, caseType)
	zap.L().Info("pipeline: legal search complete",
		zap.String("query", query),
		zap.Int("total_results", resp.Total),
	)
	return resp
}

// FallbackText is the placeholder recorded for a job whose completion
// failed after all retries.
func FallbackText(job model.JobName) string {
	// A Caser is stateful; build one per call.
	title := cases.Title(language.English, cases.NoLower).String(string(job))
	return "## " + title + "\n\nDefense analysis failed. Please try again."
}
