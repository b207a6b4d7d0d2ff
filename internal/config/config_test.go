package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 4, cfg.Server.MaxConcurrentPacks)
	assert.Equal(t, "openai", cfg.Completion.Provider)
	// Empty base URL and model select the provider's own defaults.
	assert.Empty(t, cfg.Completion.BaseURL)
	assert.Empty(t, cfg.Completion.Model)
	assert.Equal(t, 3, cfg.Completion.Retry.RateLimitRetries)
	assert.Equal(t, 1000, cfg.Completion.Retry.RateLimitBackoffMs)
	assert.InDelta(t, 2.0, cfg.Completion.Retry.RateLimitMultiplier, 0.001)
	assert.Equal(t, 2, cfg.Completion.Retry.TransientRetries)
	assert.Equal(t, 1000, cfg.Completion.Retry.TransientBackoffMs)
	assert.Equal(t, "https://api.exa.ai", cfg.Exa.BaseURL)
	assert.Equal(t, 5, cfg.Research.MaxTerms)
	assert.Equal(t, 3, cfg.Research.MaxExtractedTerms)
	assert.Equal(t, 2, cfg.Research.NumResults)
	assert.Equal(t, 300, cfg.Research.ExcerptChars)
	assert.Equal(t, 2, cfg.Research.MaxHighlights)
	assert.Equal(t, 300, cfg.Research.DelayMs)
	assert.Equal(t, DefaultResearchDomains, cfg.Research.Domains)
	assert.Equal(t, 3, cfg.Search.NumResults)
	assert.Equal(t, 500, cfg.Search.ExcerptChars)
	assert.Len(t, cfg.Search.Domains, 11)
	assert.Equal(t, 80000, cfg.Pack.MaxInputChars)
	assert.Equal(t, 500, cfg.Pack.JobDelayMs)
	assert.Equal(t, 100000, cfg.Analysis.MaxInputChars)
	assert.Equal(t, "native", cfg.Extract.Provider)
	assert.Empty(t, cfg.Completion.Key)
	assert.Empty(t, cfg.Exa.Key)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
pack:
  job_delay_ms: 250
completion:
  provider: anthropic
  model: claude-sonnet-4-5-20250929
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 250, cfg.Pack.JobDelayMs)
	assert.Equal(t, "anthropic", cfg.Completion.Provider)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Completion.Model)
	// Defaults still apply for unset values
	assert.Equal(t, 300, cfg.Research.DelayMs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
research:
  delay_ms: 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("DEFENSEPACK_LOG_LEVEL", "warn")
	t.Setenv("DEFENSEPACK_RESEARCH_DELAY_MS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Research.DelayMs)
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("DEFENSEPACK_EXA_KEY", "exa-test")
	t.Setenv("DEFENSEPACK_COMPLETION_KEY", "csk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "exa-test", cfg.Exa.Key)
	assert.Equal(t, "csk-test", cfg.Completion.Key)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFENSEPACK_SERVER_PORT=7070\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DEFENSEPACK_SERVER_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Completion.Provider = "openai"
	cfg.Completion.Key = "csk-key"
	cfg.Exa.Key = "exa-key"
	cfg.Research.MaxTerms = 5
	cfg.Server.Port = 8080
	cfg.Server.MaxConcurrentPacks = 4
	return cfg
}

func TestValidate_AllPresent(t *testing.T) {
	cfg := validDefaults()

	for _, mode := range []string{"pack", "analyze", "search", "serve"} {
		assert.NoError(t, cfg.Validate(mode), mode)
	}
}

func TestValidatePack_MissingKeys(t *testing.T) {
	cfg := validDefaults()
	cfg.Completion.Key = ""
	cfg.Exa.Key = ""

	err := cfg.Validate("pack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion.key is required")
	assert.Contains(t, err.Error(), "exa.key is required")
}

func TestValidateAnalyze_NoSearchKeyNeeded(t *testing.T) {
	cfg := validDefaults()
	cfg.Exa.Key = ""

	assert.NoError(t, cfg.Validate("analyze"))
}

func TestValidateSearch_NoCompletionKeyNeeded(t *testing.T) {
	cfg := validDefaults()
	cfg.Completion.Key = ""

	assert.NoError(t, cfg.Validate("search"))
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validDefaults()
	cfg.Completion.Provider = "gemini"

	err := cfg.Validate("analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `completion.provider "gemini" is not supported`)
}

func TestValidate_MaxTermsBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Research.MaxTerms = 0
	assert.ErrorContains(t, cfg.Validate("pack"), "research.max_terms")

	cfg.Research.MaxTerms = 6
	assert.ErrorContains(t, cfg.Validate("pack"), "research.max_terms")
}

func TestValidate_NegativeExtractedTerms(t *testing.T) {
	cfg := validDefaults()
	cfg.Research.MaxExtractedTerms = -1

	assert.ErrorContains(t, cfg.Validate("pack"), "research.max_extracted_terms must be >= 0")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Server.MaxConcurrentPacks = 0
	assert.ErrorContains(t, cfg.Validate("serve"), "max_concurrent_packs must be between 1 and 64")

	cfg.Server.MaxConcurrentPacks = 65
	assert.ErrorContains(t, cfg.Validate("serve"), "max_concurrent_packs must be between 1 and 64")

	cfg.Server.MaxConcurrentPacks = 64
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
