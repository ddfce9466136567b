package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window per-user counter the command-handling layer
// consults before invoking the tracking service. Keeping the counters in
// Redis leaves the core services free of shared mutable state.
type RateLimiter struct {
	c      *client
	limit  int64
	window time.Duration
}

// NewRateLimiter builds a limiter allowing limit commands per user per
// window.
func NewRateLimiter(c *client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{c: c, limit: limit, window: window}
}

func rateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:%d", userID)
}

// Allow reports whether the user may issue another command in the current
// window.
func (r *RateLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	key := rateLimitKey(userID)

	count, err := r.c.conn.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.c.conn.Expire(ctx, key, r.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= r.limit, nil
}
