package social

import (
	"sync"
	"time"

	"github.com/openrune/botcore/internal/pkg/clock"
)

// inviteLimiter tracks invite timestamps per player over a rolling window.
// Exceeding the limit is a safety violation, not a tier decision.
type inviteLimiter struct {
	mu     sync.Mutex
	clock  clock.Clock
	limit  int
	window time.Duration
	seen   map[string][]time.Time
}

func newInviteLimiter(clk clock.Clock, limit int, window time.Duration) *inviteLimiter {
	return &inviteLimiter{
		clock:  clk,
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

// Allow records one invite from the player and reports whether they are
// still within the limit.
func (l *inviteLimiter) Allow(playerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	kept := l.seen[playerID][:0]
	for _, t := range l.seen[playerID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	l.seen[playerID] = kept

	return len(kept) <= l.limit
}
