// Package completion sends prompts to a chat-completion backend under the
// bounded two-tier retry policy.
package completion

import (
	"context"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/resilience"
	"github.com/justicejet/defensepack/pkg/anthropic"
	"github.com/justicejet/defensepack/pkg/chat"
)

// Request is one system+user exchange.
type Request struct {
	System    string
	User      string
	Model     string
	MaxTokens int
}

// Response is the text of a single completion.
type Response struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Provider performs exactly one completion request. Rate-limit rejections
// must be reported as *resilience.RateLimitError.
type Provider interface {
	Chat(ctx context.Context, req Request) (*Response, error)
}

// NewProvider builds the backend selected by cfg.Provider.
func NewProvider(cfg config.CompletionConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai", "":
		var opts []chat.Option
		if cfg.BaseURL != "" {
			opts = append(opts, chat.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, chat.WithModel(cfg.Model))
		}
		return NewOpenAI(chat.NewClient(cfg.Key, opts...)), nil
	case "anthropic":
		var opts []anthropic.Option
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return NewAnthropic(anthropic.NewClient(cfg.Key, opts...)), nil
	default:
		return nil, eris.Errorf("completion: unknown provider %q", cfg.Provider)
	}
}

// OpenAI adapts an OpenAI-compatible chat client.
type OpenAI struct {
	client chat.Client
}

// NewOpenAI wraps client as a Provider.
func NewOpenAI(client chat.Client) *OpenAI {
	return &OpenAI{client: client}
}

// Chat sends one completion request.
func (p *OpenAI) Chat(ctx context.Context, req Request) (*Response, error) {
	creq := chat.ChatCompletionRequest{
		Model:    req.Model,
		Messages: []chat.Message{chat.System(req.System), chat.User(req.User)},
	}
	if req.MaxTokens > 0 {
		creq.MaxTokens = &req.MaxTokens
	}

	resp, err := p.client.ChatCompletion(ctx, creq)
	if err != nil {
		var apiErr *chat.APIError
		if eris.As(err, &apiErr) && resilience.IsRateLimitStatus(apiErr.StatusCode) {
			return nil, resilience.NewRateLimitError(err, parseRetryAfter(apiErr.RetryAfter))
		}
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("completion: response has no choices")
	}

	return &Response{
		Text:         resp.Content(),
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// defaultAnthropicModel is used when no model is configured.
const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// Anthropic adapts the Anthropic messages client.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic wraps client as a Provider.
func NewAnthropic(client anthropic.Client) *Anthropic {
	return &Anthropic{client: client}
}

// Chat sends one completion request.
func (p *Anthropic) Chat(ctx context.Context, req Request) (*Response, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	modelID := req.Model
	if modelID == "" {
		modelID = defaultAnthropicModel
	}

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     modelID,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []anthropic.Message{{Role: "user", Content: req.User}},
	})
	if err != nil {
		if resilience.IsRateLimitStatus(anthropic.StatusCode(err)) {
			return nil, resilience.NewRateLimitError(err, parseRetryAfter(anthropic.RetryAfter(err)))
		}
		return nil, err
	}

	return &Response{
		Text:         resp.Text(),
		Model:        resp.Model,
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// parseRetryAfter reads a Retry-After value given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
