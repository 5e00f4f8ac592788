package fetch

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RetryPolicy decides whether an attempt is repeated and how long to wait first
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration

	// Transient classifies an attempt result; nil means IsTransient
	Transient func(status int, err error) bool
}

// DefaultRetry is three attempts with 250ms exponential backoff capped at 5s
func DefaultRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Base: 250 * time.Millisecond, Max: 5 * time.Second}
}

// NoRetry makes exactly one attempt
func NoRetry() RetryPolicy { return RetryPolicy{MaxAttempts: 1} }

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Base <= 0 {
		p.Base = 250 * time.Millisecond
	}
	if p.Max <= 0 {
		p.Max = 30 * time.Second
	}
	if p.Transient == nil {
		p.Transient = IsTransient
	}
	return p
}

// Backoff returns the wait before attempt+1, Base << attempt capped at Max
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	p = p.normalized()
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 20 {
		return p.Max
	}
	d := p.Base << uint(attempt)
	if d <= 0 || d > p.Max {
		return p.Max
	}
	return d
}

// ShouldRetry reports whether attempt (zero based) may be followed by another
func (p RetryPolicy) ShouldRetry(attempt, status int, err error) bool {
	p = p.normalized()
	if attempt+1 >= p.MaxAttempts {
		return false
	}
	return p.Transient(status, err)
}

// IsTransient is the default predicate
// 429 and gateway style 5xx retry; so do transport failures and attempt timeouts
// caller cancellation never does
func IsTransient(status int, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx waits d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
