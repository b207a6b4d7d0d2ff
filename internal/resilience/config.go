package resilience

import (
	"time"
)

// FromRetryConfig converts config values to a Policy. Non-positive backoff
// and multiplier values keep the defaults; negative retry counts disable a
// tier.
func FromRetryConfig(rateLimitRetries, rateLimitBackoffMs int, multiplier float64, transientRetries, transientBackoffMs int) Policy {
	p := DefaultPolicy()
	p.RateLimit.MaxRetries = max(rateLimitRetries, 0)
	if rateLimitBackoffMs > 0 {
		p.RateLimit.InitialBackoff = time.Duration(rateLimitBackoffMs) * time.Millisecond
	}
	if multiplier > 0 {
		p.RateLimit.Multiplier = multiplier
	}
	p.Transient.MaxRetries = max(transientRetries, 0)
	if transientBackoffMs > 0 {
		p.Transient.InitialBackoff = time.Duration(transientBackoffMs) * time.Millisecond
	}
	return p
}
