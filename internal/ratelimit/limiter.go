package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a client identified by key may proceed. Behind an
// interface so a single-process window can be swapped for a shared store
// under multi-instance deployment.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type windowState struct {
	count       int
	windowStart time.Time
}

// FixedWindow is an in-process fixed-window limiter: at most max requests
// per window per key, the window resetting once elapsed. Approximate under
// concurrent bursts at the boundary.
type FixedWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	state  map[string]*windowState
	now    func() time.Time
}

// NewFixedWindow constructs an in-memory limiter.
func NewFixedWindow(max int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		max:    max,
		window: window,
		state:  make(map[string]*windowState),
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the window.
func (l *FixedWindow) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.state[key]
	if !ok || now.Sub(entry.windowStart) > l.window {
		l.state[key] = &windowState{count: 1, windowStart: now}
		return true, nil
	}

	if entry.count >= l.max {
		return false, nil
	}
	entry.count++
	return true, nil
}
