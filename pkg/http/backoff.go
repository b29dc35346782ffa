package http

import (
	"errors"
	"math"
	"net/http"
	"time"
)

// BackoffConfig controls retries of a failed request. A nil config means a single attempt.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// RetryOn lists HTTP statuses worth retrying. Transport errors are always retried.
	RetryOn []int
}

// NewBackoffConfig returns an exponential backoff retrying 5xx and 429 responses.
func NewBackoffConfig(maxRetries int) *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      maxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
		RetryOn: []int{
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

func (b *BackoffConfig) attempts() int {
	if b == nil || b.MaxRetries < 0 {
		return 1
	}
	return b.MaxRetries + 1
}

func (b *BackoffConfig) shouldRetry(status int, err error) bool {
	if b == nil {
		return false
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return true
	}

	for _, candidate := range b.RetryOn {
		if candidate == status {
			return true
		}
	}
	return false
}

// delay returns the wait before the given retry attempt (1-based)
func (b *BackoffConfig) delay(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	wait := time.Duration(float64(b.InitialInterval) * math.Pow(multiplier, float64(attempt-1)))
	if b.MaxInterval > 0 && wait > b.MaxInterval {
		return b.MaxInterval
	}
	return wait
}
