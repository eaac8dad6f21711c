package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleTTL = time.Minute

// AccessThrottle rate-limits last-access writes per user, backed by Redis.
// Key format: lastaccess:<user_id>
type AccessThrottle struct {
	client *redis.Client
}

// NewAccessThrottle creates an AccessThrottle wrapping the given Redis client.
func NewAccessThrottle(client *redis.Client) *AccessThrottle {
	return &AccessThrottle{client: client}
}

// Allow reports whether a last-access write should proceed for this user.
// At most one write per user per throttleTTL window. Redis errors degrade to
// allowing the write; the throttle is an optimisation, not a correctness
// gate.
func (t *AccessThrottle) Allow(ctx context.Context, userID string) bool {
	ok, err := t.client.SetNX(ctx, "lastaccess:"+userID, "1", throttleTTL).Result()
	if err != nil {
		return true
	}
	return ok
}
