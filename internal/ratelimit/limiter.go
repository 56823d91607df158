// Package ratelimit implements an in-process fixed-window request counter
// keyed by identifier. Windows reset lazily on check; bursts straddling a
// window boundary are an accepted approximation of this algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// Limit configures one feature's ceiling.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Result is the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type window struct {
	count    int
	startsAt time.Time
}

// Limiter tracks fixed windows per identifier. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewLimiter creates an empty limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check records one request for identifier against limit and reports
// whether it is allowed. Each call increments the window count, so a
// denied caller should retry after Result.ResetIn.
func (l *Limiter) Check(identifier string, limit Limit) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[identifier]
	if !ok || now.Sub(w.startsAt) >= limit.Window {
		w = &window{startsAt: now}
		l.windows[identifier] = w
	}

	resetIn := limit.Window - now.Sub(w.startsAt)

	w.count++
	if w.count > limit.MaxRequests {
		return Result{Allowed: false, Remaining: 0, ResetIn: resetIn}
	}

	return Result{
		Allowed:   true,
		Remaining: limit.MaxRequests - w.count,
		ResetIn:   resetIn,
	}
}
