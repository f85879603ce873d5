package intake

import (
	"sync"
	"time"
)

// Limiter is the fixed-window submission limiter for the contact form:
// per-IP count with a window-reset timestamp, held in process memory only.
// State is bounded by process uptime and resets on restart; across multiple
// instances each process counts independently (best-effort limiting,
// accepted per current single-process deployment).
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	span    time.Duration
	now     func() time.Time
}

type window struct {
	count int
	reset time.Time
}

// NewLimiter allows limit submissions per span for each client key.
func NewLimiter(limit int, span time.Duration) *Limiter {
	return &Limiter{
		entries: make(map[string]*window),
		limit:   limit,
		span:    span,
		now:     time.Now,
	}
}

// Allow records one submission for key and reports whether it is within the
// limit. A new key or an elapsed window resets the count to 1; within an
// active window the count increments until the ceiling is hit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.After(w.reset) {
		l.entries[key] = &window{count: 1, reset: now.Add(l.span)}
		return true
	}
	w.count++
	return w.count <= l.limit
}
