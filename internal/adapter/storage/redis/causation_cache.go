package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CausationCache implements ports.CausationCache using Redis. It is the
// fast path in front of the ledger's causation_id uniqueness check.
type CausationCache struct {
	client *goredis.Client
	prefix string
}

// NewCausationCache creates a new Redis-backed causation cache.
func NewCausationCache(client *goredis.Client) *CausationCache {
	return &CausationCache{
		client: client,
		prefix: "causation:",
	}
}

// Get retrieves the cached ledger event for a causation ID.
// Returns nil, nil if the key does not exist.
func (c *CausationCache) Get(ctx context.Context, causationID string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+causationID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis causation get: %w", err)
	}
	return val, nil
}

// Set stores a ledger event in the causation cache with TTL.
func (c *CausationCache) Set(ctx context.Context, causationID string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+causationID, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis causation set: %w", err)
	}
	return nil
}
