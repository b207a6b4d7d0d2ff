package completion

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/model"
	"github.com/justicejet/defensepack/internal/prompt"
	"github.com/justicejet/defensepack/internal/resilience"
)

// Client completes prompt jobs through a Provider, retrying rate-limit and
// transient failures independently. It never substitutes fallback text:
// when both budgets are spent the last error is returned.
type Client struct {
	provider  Provider
	model     string
	maxTokens int
	policy    resilience.Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPolicy overrides the retry policy.
func WithPolicy(p resilience.Policy) ClientOption {
	return func(c *Client) {
		c.policy = p
	}
}

// WithModel sets the model sent with every request.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithMaxTokens caps the length of each completion.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.maxTokens = n
	}
}

// NewClient creates a Client using the default retry policy.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		policy:   resilience.DefaultPolicy(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewFromConfig builds the provider and Client described by cfg.
func NewFromConfig(cfg config.CompletionConfig) (*Client, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	r := cfg.Retry
	policy := resilience.FromRetryConfig(r.RateLimitRetries, r.RateLimitBackoffMs, r.RateLimitMultiplier, r.TransientRetries, r.TransientBackoffMs)
	return NewClient(provider,
		WithModel(cfg.Model),
		WithMaxTokens(cfg.MaxTokens),
		WithPolicy(policy),
	), nil
}

// Complete runs one defense pack job under the pack system prompt.
func (c *Client) Complete(ctx context.Context, job model.PromptJob) (model.CompletionResult, error) {
	return c.CompleteWithSystem(ctx, string(job.Name), prompt.PackSystemPrompt, job.Prompt)
}

// CompleteWithSystem sends an arbitrary system+user pair; name labels logs
// and the result.
func (c *Client) CompleteWithSystem(ctx context.Context, name, system, user string) (model.CompletionResult, error) {
	policy := c.policy
	if policy.OnRetry == nil {
		policy.OnRetry = resilience.RetryLogger("completion", name)
	}

	start := time.Now()
	resp, err := resilience.DoVal(ctx, policy, func(ctx context.Context) (*Response, error) {
		return c.provider.Chat(ctx, Request{
			System:    system,
			User:      user,
			Model:     c.model,
			MaxTokens: c.maxTokens,
		})
	})
	if err != nil {
		return model.CompletionResult{}, eris.Wrapf(err, "completion: %s", name)
	}

	zap.L().Debug("completion: done",
		zap.String("job", name),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	usedModel := resp.Model
	if usedModel == "" {
		usedModel = c.model
	}
	return model.CompletionResult{
		Job:   model.JobName(name),
		Text:  resp.Text,
		Model: usedModel,
		Usage: model.TokenUsage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
		},
	}, nil
}
