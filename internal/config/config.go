package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Completion CompletionConfig `yaml:"completion" mapstructure:"completion"`
	Exa        ExaConfig        `yaml:"exa" mapstructure:"exa"`
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Pack       PackConfig       `yaml:"pack" mapstructure:"pack"`
	Analysis   AnalysisConfig   `yaml:"analysis" mapstructure:"analysis"`
	Extract    ExtractConfig    `yaml:"extract" mapstructure:"extract"`
	Pricing    PricingConfig    `yaml:"pricing" mapstructure:"pricing"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CompletionConfig selects and configures the chat-completion backend.
type CompletionConfig struct {
	Provider  string      `yaml:"provider" mapstructure:"provider"`
	Key       string      `yaml:"key" mapstructure:"key"`
	BaseURL   string      `yaml:"base_url" mapstructure:"base_url"`
	Model     string      `yaml:"model" mapstructure:"model"`
	MaxTokens int         `yaml:"max_tokens" mapstructure:"max_tokens"`
	Retry     RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// RetryConfig holds the two independent retry tiers of the completion client.
type RetryConfig struct {
	RateLimitRetries    int     `yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
	RateLimitBackoffMs  int     `yaml:"rate_limit_backoff_ms" mapstructure:"rate_limit_backoff_ms"`
	RateLimitMultiplier float64 `yaml:"rate_limit_multiplier" mapstructure:"rate_limit_multiplier"`
	TransientRetries    int     `yaml:"transient_retries" mapstructure:"transient_retries"`
	TransientBackoffMs  int     `yaml:"transient_backoff_ms" mapstructure:"transient_backoff_ms"`
}

// ExaConfig holds Exa neural search API settings.
type ExaConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ResearchConfig configures the per-term research that feeds the defense pack.
type ResearchConfig struct {
	MaxTerms          int      `yaml:"max_terms" mapstructure:"max_terms"`
	MaxExtractedTerms int      `yaml:"max_extracted_terms" mapstructure:"max_extracted_terms"`
	NumResults        int      `yaml:"num_results" mapstructure:"num_results"`
	ExcerptChars      int      `yaml:"excerpt_chars" mapstructure:"excerpt_chars"`
	MaxHighlights     int      `yaml:"max_highlights" mapstructure:"max_highlights"`
	DelayMs           int      `yaml:"delay_ms" mapstructure:"delay_ms"`
	Domains           []string `yaml:"domains" mapstructure:"domains"`
}

// SearchConfig configures the free-text legal search endpoint.
type SearchConfig struct {
	NumResults   int      `yaml:"num_results" mapstructure:"num_results"`
	ExcerptChars int      `yaml:"excerpt_chars" mapstructure:"excerpt_chars"`
	DelayMs      int      `yaml:"delay_ms" mapstructure:"delay_ms"`
	Domains      []string `yaml:"domains" mapstructure:"domains"`
}

// PackConfig configures defense pack generation.
type PackConfig struct {
	MaxInputChars int `yaml:"max_input_chars" mapstructure:"max_input_chars"`
	JobDelayMs    int `yaml:"job_delay_ms" mapstructure:"job_delay_ms"`
}

// AnalysisConfig configures the single combined analysis.
type AnalysisConfig struct {
	MaxInputChars int `yaml:"max_input_chars" mapstructure:"max_input_chars"`
}

// ExtractConfig configures document text extraction.
type ExtractConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// PricingConfig holds per-provider pricing rates.
type PricingConfig struct {
	Models    map[string]ModelPricing `yaml:"models" mapstructure:"models"`
	PerSearch float64                 `yaml:"per_search" mapstructure:"per_search"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	CORSOrigins        []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	MaxUploadMB        int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
	MaxConcurrentPacks int      `yaml:"max_concurrent_packs" mapstructure:"max_concurrent_packs"`
	RateLimit          float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst          int      `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultResearchDomains are the trusted legal-information sites research
// terms are restricted to.
var DefaultResearchDomains = []string{
	"justia.com",
	"findlaw.com",
	"law.cornell.edu",
	"courtlistener.com",
	"lexisnexis.com",
	"nolo.com",
	"americanbar.org",
}

// DefaultSearchDomains is the broader allow-list used by free-text search.
var DefaultSearchDomains = []string{
	"justia.com",
	"findlaw.com",
	"law.cornell.edu",
	"courtlistener.com",
	"google.com/scholar",
	"lexisnexis.com",
	"westlaw.com",
	"law.com",
	"americanbar.org",
	"nolo.com",
	"avvo.com",
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// .env is optional; godotenv never overrides variables already set.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEFENSEPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 50)
	v.SetDefault("server.max_concurrent_packs", 4)
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("completion.key", "")
	v.SetDefault("completion.provider", "openai")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.max_tokens", 8192)
	v.SetDefault("completion.retry.rate_limit_retries", 3)
	v.SetDefault("completion.retry.rate_limit_backoff_ms", 1000)
	v.SetDefault("completion.retry.rate_limit_multiplier", 2.0)
	v.SetDefault("completion.retry.transient_retries", 2)
	v.SetDefault("completion.retry.transient_backoff_ms", 1000)
	v.SetDefault("exa.key", "")
	v.SetDefault("exa.base_url", "https://api.exa.ai")
	v.SetDefault("exa.timeout_secs", 30)
	v.SetDefault("research.max_terms", 5)
	v.SetDefault("research.max_extracted_terms", 3)
	v.SetDefault("research.num_results", 2)
	v.SetDefault("research.excerpt_chars", 300)
	v.SetDefault("research.max_highlights", 2)
	v.SetDefault("research.delay_ms", 300)
	v.SetDefault("research.domains", DefaultResearchDomains)
	v.SetDefault("search.num_results", 3)
	v.SetDefault("search.excerpt_chars", 500)
	v.SetDefault("search.delay_ms", 300)
	v.SetDefault("search.domains", DefaultSearchDomains)
	v.SetDefault("pack.max_input_chars", 80000)
	v.SetDefault("pack.job_delay_ms", 500)
	v.SetDefault("analysis.max_input_chars", 100000)
	v.SetDefault("extract.provider", "native")
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("pricing.per_search", 0.005)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by a command. Modes: "pack"
// (completion + search), "analyze" (completion), "search" (search only) and
// "serve" (everything, plus server bounds).
func (c *Config) Validate(mode string) error {
	var errs []string

	var needCompletion, needSearch bool
	switch mode {
	case "pack", "serve":
		needCompletion, needSearch = true, true
	case "analyze":
		needCompletion = true
	case "search":
		needSearch = true
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if needCompletion {
		if c.Completion.Key == "" {
			errs = append(errs, "completion.key is required")
		}
		switch c.Completion.Provider {
		case "openai", "anthropic":
		default:
			errs = append(errs, fmt.Sprintf("completion.provider %q is not supported", c.Completion.Provider))
		}
	}
	if needSearch && c.Exa.Key == "" {
		errs = append(errs, "exa.key is required")
	}
	if c.Research.MaxTerms < 1 || c.Research.MaxTerms > 5 {
		errs = append(errs, "research.max_terms must be between 1 and 5")
	}
	if c.Research.MaxExtractedTerms < 0 {
		errs = append(errs, "research.max_extracted_terms must be >= 0")
	}

	if mode == "serve" {
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.MaxConcurrentPacks < 1 || c.Server.MaxConcurrentPacks > 64 {
			errs = append(errs, "server.max_concurrent_packs must be between 1 and 64")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
