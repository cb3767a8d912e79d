package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitIPPrefix is the Redis key prefix for client IP rate limits.
	rateLimitIPPrefix = "recetario:ratelimit:ip:"
	// rateLimitIPTTL is the TTL for IP rate limit keys.
	rateLimitIPTTL = 10 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript implements the token bucket algorithm atomically:
// refill and consumption happen in a single call.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- bucket capacity
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = now - last_update
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckIPRateLimit checks and updates the rate limit for an IP address.
// IP is hashed to avoid storing raw IP addresses.
// Redis errors fail open: the request is allowed.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond float64, burst int) (*RateLimitResult, error) {
	key := rateLimitIPPrefix + hashIP(ip)
	now := time.Now()

	result, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		ratePerSecond, burst, now.Unix(), int(rateLimitIPTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return &RateLimitResult{
			Allowed:   true,
			Limit:     burst,
			Remaining: int64(burst),
			ResetAt:   now.Add(time.Minute),
		}, nil
	}

	return &RateLimitResult{
		Allowed:    result[0] == 1,
		Limit:      burst,
		Remaining:  result[2],
		ResetAt:    now.Add(time.Duration(float64(time.Second) / ratePerSecond)),
		RetryAfter: time.Duration(result[1]) * time.Second,
	}, nil
}

// RedisLimiter limits requests per client IP with a token bucket shared by
// every instance through Redis.
type RedisLimiter struct {
	cache *Cache
	rps   float64
	burst int
}

// NewRedisLimiter creates a RedisLimiter allowing rps requests per second per
// IP with bursts of up to burst requests.
func NewRedisLimiter(c *Cache, rps float64, burst int) *RedisLimiter {
	return &RedisLimiter{cache: c, rps: rps, burst: burst}
}

// Allow consumes a token for ip.
func (l *RedisLimiter) Allow(ctx context.Context, ip string) (*RateLimitResult, error) {
	return l.cache.CheckIPRateLimit(ctx, ip, l.rps, l.burst)
}

// hashIP creates a truncated SHA256 hash of an IP address.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
