// Package ratelimit implements a fixed-window per-client request limiter.
package ratelimit

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wealthpeek/feescope/internal/interfaces"
)

const sweepProbability = 0.01

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client key in fixed windows. Entries for
// expired windows are pruned opportunistically on a small fraction of calls
// rather than by a background task, which bounds memory without extra
// goroutines. State lives in process memory only; a multi-instance
// deployment needs an external shared counter behind the same interface.
type Limiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	maxRequests int
	window      time.Duration
	now         func() time.Time
	randFloat   func() float64
}

// Option configures the limiter.
type Option func(*Limiter)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a limiter allowing maxRequests per window per client key.
func New(maxRequests int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		entries:     make(map[string]*entry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		randFloat:   rand.Float64,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records a request for clientKey and reports whether it exceeded the
// window budget. Exceeding the limit is a normal outcome, not an error; the
// count is not incremented past the budget.
func (l *Limiter) Check(clientKey string) interfaces.RateLimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if l.randFloat() < sweepProbability {
		for key, e := range l.entries {
			if now.After(e.resetAt) {
				delete(l.entries, key)
			}
		}
	}

	e, ok := l.entries[clientKey]
	if !ok || now.After(e.resetAt) {
		l.entries[clientKey] = &entry{count: 1, resetAt: now.Add(l.window)}
		return interfaces.RateLimitResult{
			Limited:   false,
			Remaining: l.maxRequests - 1,
			ResetIn:   l.window,
		}
	}

	if e.count >= l.maxRequests {
		return interfaces.RateLimitResult{
			Limited:   true,
			Remaining: 0,
			ResetIn:   e.resetAt.Sub(now),
		}
	}

	e.count++
	return interfaces.RateLimitResult{
		Limited:   false,
		Remaining: l.maxRequests - e.count,
		ResetIn:   e.resetAt.Sub(now),
	}
}

// Len returns the number of tracked client keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Ensure Limiter implements RateLimiter
var _ interfaces.RateLimiter = (*Limiter)(nil)
