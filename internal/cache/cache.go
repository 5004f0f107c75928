// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key TTLs. Wallet balances are invalidated on every mutation, so the TTL
// is only a backstop; payment statuses are cached terminal-only and can
// live longer.
const (
	BalanceTTL = 30 * time.Second
	StatusTTL  = 10 * time.Minute
)

// Cache is a thin JSON read-through cache over Redis. A nil *Cache (or one
// constructed without a client) disables caching: reads miss and writes are
// dropped, so callers never need to branch on whether Redis is configured.
type Cache struct {
	rdb *redis.Client
}

// New creates a Cache over the given Redis client. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// WalletKey is the cache key for a user's wallet balance.
func WalletKey(userID int64) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

// PaymentStatusKey is the cache key for a payment status poll.
func PaymentStatusKey(reference string) string {
	return "payment:status:" + reference
}

// Get retrieves a value and unmarshals it into dest. The boolean reports
// whether the key was present.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Delete removes keys, invalidating cached state after a mutation commits.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
