package limiter

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory is a process-local limiter. Each username gets a token bucket of
// maxFails failures that refills over window; an empty bucket blocks the
// username for blockFor.
type Memory struct {
	mu       sync.Mutex
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time
	entries  map[string]*entry
}

type entry struct {
	fails        *rate.Limiter
	blockedUntil time.Time
}

// NewMemory constructs an in-memory limiter.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	if maxFails <= 0 {
		maxFails = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Memory{
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      time.Now,
		entries:  map[string]*entry{},
	}
}

func key(username string) string { return strings.ToLower(strings.TrimSpace(username)) }

func (l *Memory) get(username string) *entry {
	k := key(username)
	e, ok := l.entries[k]
	if !ok {
		every := rate.Every(l.window / time.Duration(l.maxFails))
		e = &entry{fails: rate.NewLimiter(every, l.maxFails)}
		l.entries[k] = e
	}
	return e
}

// Allow reports whether username may attempt a login now.
func (l *Memory) Allow(_ context.Context, username string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key(username)]
	if !ok {
		return true, 0, nil
	}
	if now := l.now(); e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success forgets username's failures.
func (l *Memory) Success(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key(username))
	return nil
}

// Failure spends one token; the attempt that empties the bucket starts a block.
func (l *Memory) Failure(_ context.Context, username string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.get(username)
	now := l.now()
	e.fails.AllowN(now, 1)
	if e.fails.TokensAt(now) < 1 {
		e.blockedUntil = now.Add(l.blockFor)
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
