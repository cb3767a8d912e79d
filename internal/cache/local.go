package cache

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// localIdleTTL is how long an unused per-IP bucket is kept.
const localIdleTTL = 3 * time.Minute

// LocalLimiter limits requests per client IP with in-process token buckets.
// It is used when Redis is not configured; limits are per instance.
type LocalLimiter struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	buckets   map[string]*localBucket
	lastSweep time.Time
	now       func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter creates a LocalLimiter allowing rps requests per second per
// IP with bursts of up to burst requests.
func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

// Allow consumes a token for ip.
func (l *LocalLimiter) Allow(_ context.Context, ip string) (*RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[ip]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now

	res := &RateLimitResult{Limit: l.burst}

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		res.RetryAfter = time.Second
		res.ResetAt = now.Add(time.Second)
		return res, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = time.Duration(math.Ceil(delay.Seconds())) * time.Second
		res.ResetAt = now.Add(delay)
		return res, nil
	}

	res.Allowed = true
	res.Remaining = int64(b.limiter.TokensAt(now))
	res.ResetAt = now.Add(time.Duration(float64(time.Second) / float64(l.rps)))
	return res, nil
}

// sweep drops buckets idle for longer than localIdleTTL. Runs at most once
// per TTL.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < localIdleTTL {
		return
	}
	l.lastSweep = now
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > localIdleTTL {
			delete(l.buckets, ip)
		}
	}
}

// Len returns the number of tracked client IPs.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
