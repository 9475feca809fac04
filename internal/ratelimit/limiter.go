// Package ratelimit provides the global request-rate cap and the
// spawn-rate ramp used while starting virtual users.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter caps the aggregate request rate across all virtual users.
// A zero or unset rate means unlimited.
type Limiter struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewLimiter creates a limiter allowing rps requests per second with a
// burst of the same size.
func NewLimiter(rps int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Wait blocks until a request may proceed or the context is done.
// With a zero rate it returns immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.RLock()
	limiter := l.limiter
	limit := limiter.Limit()
	l.mu.RUnlock()

	if limit == 0 {
		return nil
	}
	return limiter.Wait(ctx)
}

// SetRate changes the allowed rate. Zero disables limiting.
func (l *Limiter) SetRate(rps int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiter.SetLimit(rate.Limit(rps))
	l.limiter.SetBurst(rps)
}
