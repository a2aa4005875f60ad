// Package cache provides a Redis-backed read-through cache for career path
// responses, keyed by a stable fingerprint of the request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// DefaultTTL is how long a cached response stays fresh.
const DefaultTTL = time.Hour

// Cache wraps a Redis client. A nil *Cache is a valid no-op cache, so
// callers need no special handling when caching is disabled.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// Connect creates a cache from a Redis URL and verifies connectivity.
func Connect(ctx context.Context, redisURL string, ttl time.Duration, log *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return &Cache{client: client, ttl: ttl, log: log}, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns the cached response for a request, or nil on a miss. Redis
// errors are logged and reported as misses.
func (c *Cache) Get(ctx context.Context, req types.CareerPathRequest) *types.CareerPathResponse {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, Fingerprint(req)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.log.Warn("cache read failed", zap.Error(err))
		return nil
	}

	var resp types.CareerPathResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		c.log.Warn("cache entry undecodable, treating as miss", zap.Error(err))
		return nil
	}
	return &resp
}

// Set stores a response. Failures are logged, never surfaced.
func (c *Cache) Set(ctx context.Context, req types.CareerPathRequest, resp *types.CareerPathResponse) {
	if c == nil || c.client == nil || resp == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		c.log.Warn("failed to marshal response for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Fingerprint(req), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
	}
}

// Fingerprint derives a stable cache key from a request. Skill order and
// casing do not affect the key.
func Fingerprint(req types.CareerPathRequest) string {
	skills := make([]string, 0, len(req.UserSkills))
	for _, s := range req.UserSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			skills = append(skills, s)
		}
	}
	sort.Strings(skills)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s",
		strings.ToLower(strings.TrimSpace(req.CurrentRole)),
		strings.ToLower(strings.TrimSpace(req.TargetRole)),
		strings.Join(skills, ","))
	return "career-paths:" + hex.EncodeToString(h.Sum(nil))
}
