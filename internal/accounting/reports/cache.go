package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps rendered statements in redis under a per-company version.
// Bumping the version on posting cheaply drops every cached statement for
// that company without scanning keys.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps the redis client with a statement TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) versionKey(companyID int64) string {
	return fmt.Sprintf("reports:ver:%d", companyID)
}

func (c *Cache) version(ctx context.Context, companyID int64) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	v, err := c.client.Get(ctx, c.versionKey(companyID)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// Key builds a versioned cache key for one statement request.
func (c *Cache) Key(ctx context.Context, companyID int64, name string, parts ...string) string {
	key := fmt.Sprintf("reports:%d:v%d:%s", companyID, c.version(ctx, companyID), name)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Fetch reads a cached statement into dest. It reports false on miss or
// when redis is unavailable, so callers fall through to the builders.
func (c *Cache) Fetch(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Store writes a statement under key. Failures are swallowed; the cache is
// an accelerator, never a source of truth.
func (c *Cache) Store(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate bumps the company's version so all cached statements expire
// from view. Old entries age out via TTL.
func (c *Cache) Invalidate(ctx context.Context, companyID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, c.versionKey(companyID)).Err()
}
