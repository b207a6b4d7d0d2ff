package resilience

import (
	"errors"
	"net/http"
	"time"
)

// RateLimitError wraps an error returned because the provider asked the
// caller to slow down (HTTP 429).
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError marks err as a rate-limit rejection. retryAfter is the
// provider's Retry-After hint, zero when absent. It is only logged.
func NewRateLimitError(err error, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Err: err, RetryAfter: retryAfter}
}

// IsRateLimited returns true if the error (or any error in its chain) is a
// RateLimitError.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// IsRateLimitStatus reports whether an HTTP status code is a rate-limit signal.
func IsRateLimitStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
