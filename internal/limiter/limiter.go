// Package limiter implements a sliding-window rate limiter keyed by client
// identifier (normally the request IP).
//
// SLIDING WINDOW:
// For each identifier we keep the timestamps of its admitted requests. A new
// request is admitted only if fewer than Max timestamps fall within the
// trailing Window. Unlike a fixed-window counter, this cannot admit 2×Max
// requests across a window boundary.
//
// SCOPE AND LIMITS:
// State is process-local and lost on restart. The limiter is advisory — it
// protects the Hunter.io quota and the store from accidental floods, it is
// not a security boundary. When several instances run behind a load
// balancer, each enforces the limit independently, so the effective global
// limit is instances × Max. That is a known scaling limitation of this
// design, not something this package tries to hide.
package limiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Defaults apply when the limiter is constructed with non-positive values,
// mirroring the RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW documentation.
const (
	DefaultMax    = 60
	DefaultWindow = 60 * time.Second
)

// Limiter tracks request timestamps per identifier.
//
// The mutex is not optional: Go's HTTP server handles each request on its
// own goroutine, so Allow and Cleanup race without it.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration

	// now is swappable so tests can control the clock.
	now func() time.Time
}

// New creates a Limiter admitting at most max requests per identifier within
// the trailing window. Non-positive arguments fall back to the defaults.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMax
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether a request from identifier is admitted right now.
// On admission the current time is recorded against the identifier; on
// rejection nothing is recorded, so a client hammering a full window does
// not extend its own lockout.
func (l *Limiter) Allow(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Drop expired timestamps for this identifier while we're here.
	valid := l.requests[identifier][:0]
	for _, t := range l.requests[identifier] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.max {
		l.requests[identifier] = valid
		return false
	}

	l.requests[identifier] = append(valid, now)
	return true
}

// Cleanup prunes timestamps older than the window across all identifiers and
// drops identifiers left with none. Timestamps still inside the window are
// never removed. Without periodic cleanup the map grows with every
// identifier ever seen.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.now().Add(-l.window)
	for identifier, times := range l.requests {
		valid := times[:0]
		for _, t := range times {
			if t.After(windowStart) {
				valid = append(valid, t)
			}
		}
		if len(valid) == 0 {
			delete(l.requests, identifier)
		} else {
			l.requests[identifier] = valid
		}
	}
}

// Run invokes Cleanup every interval until ctx is cancelled. A ticker gives
// a deterministic bound on the map's memory, where a probabilistic inline
// sweep could leave stale entries around indefinitely under low traffic.
// Call it as a goroutine tied to the server's lifetime.
func (l *Limiter) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("rate limiter cleanup stopped")
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// tracked returns the number of identifiers currently held. Test helper.
func (l *Limiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}
