package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// fixedWindowScript counts hits in the current window. The first hit of a
// window starts its expiry.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {count, ttl}
`)

// RateLimiter is a fixed-window limiter keyed by route and client IP.
type RateLimiter struct {
	cache  *Cache
	limit  int64
	window time.Duration
}

// NewRateLimiter allows limit requests per window for every route and
// client pair.
func NewRateLimiter(cache *Cache, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{cache: cache, limit: int64(limit), window: window}
}

// Allow records one request of clientIP on route. On Redis errors the
// request is allowed and the error is returned for logging.
func (l *RateLimiter) Allow(ctx context.Context, route, clientIP string) (RateLimitResult, error) {
	key := rateLimitPrefix + route + ":" + hashIP(clientIP)

	result, err := fixedWindowScript.Run(ctx, l.cache.client,
		[]string{key},
		l.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return RateLimitResult{Allowed: true, Remaining: l.limit}, fmt.Errorf("rate limit check: %w", err)
	}

	count, ttl := result[0], result[1]
	if ttl < 0 {
		ttl = l.window.Milliseconds()
	}

	return RateLimitResult{
		Allowed:    count <= l.limit,
		Remaining:  max(l.limit-count, 0),
		RetryAfter: time.Duration(ttl) * time.Millisecond,
	}, nil
}

// hashIP keeps raw client addresses out of Redis.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8])
}
