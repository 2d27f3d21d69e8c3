package engine

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiters hands out one token-bucket limiter per user identifier.
// Limiters are created on first use and kept for the process lifetime.
type userLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUserLimiters(perMinute int) *userLimiters {
	return &userLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// allow reports whether the user may spend one request now.
func (u *userLimiters) allow(userID string) bool {
	u.mu.Lock()
	l, ok := u.limiters[userID]
	if !ok {
		l = rate.NewLimiter(u.limit, u.burst)
		u.limiters[userID] = l
	}
	u.mu.Unlock()
	return l.Allow()
}
