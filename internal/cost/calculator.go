// Package cost estimates the USD cost of completion and search calls.
package cost

import "github.com/justicejet/defensepack/internal/config"

// Rates holds per-provider pricing configuration.
type Rates struct {
	Models    map[string]ModelRate `yaml:"models" mapstructure:"models"`
	PerSearch float64              `yaml:"per_search" mapstructure:"per_search"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Completion computes the cost of one chat completion. Unknown models cost 0.
func (c *Calculator) Completion(model string, input, output int) float64 {
	rate, ok := c.rates.Models[model]
	if !ok {
		return 0
	}
	inCost := (float64(input) / 1e6) * rate.Input
	outCost := (float64(output) / 1e6) * rate.Output
	return inCost + outCost
}

// Searches returns the flat cost of n Exa searches.
func (c *Calculator) Searches(n int) float64 {
	return float64(n) * c.rates.PerSearch
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"qwen-3-235b-a22b-instruct-2507": {Input: 0.60, Output: 1.20},
			"llama-3.3-70b":                  {Input: 0.85, Output: 1.20},
			"gpt-4o-mini":                    {Input: 0.15, Output: 0.60},
			"claude-haiku-4-5-20251001":      {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929":     {Input: 3.00, Output: 15.00},
		},
		PerSearch: 0.005,
	}
}

// RatesFromConfig overlays configured pricing on DefaultRates.
func RatesFromConfig(cfg config.PricingConfig) Rates {
	rates := DefaultRates()
	for model, p := range cfg.Models {
		rates.Models[model] = ModelRate{Input: p.Input, Output: p.Output}
	}
	if cfg.PerSearch > 0 {
		rates.PerSearch = cfg.PerSearch
	}
	return rates
}
