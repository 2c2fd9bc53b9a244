package api

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds the number of analyze requests a single client may make
// inside a sliding window.
type Limiter interface {
	// Allow reports whether the client identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}

// Lua script for an atomic sliding-window check over a sorted set of
// request timestamps. Pruning, counting and recording in separate round
// trips races under concurrent requests; the script does all three
// atomically. Scores are microseconds since epoch; entries older than
// the window are dropped before the admission count.
const slidingWindowLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, 0, now - window)

local count = redis.call("ZCARD", key)
if count >= limit then
    return {0, count}
end

redis.call("ZADD", key, now, member)
redis.call("PEXPIRE", key, math.ceil(window / 1000))

return {1, count + 1}
`

// RedisLimiter is a redis-backed sliding-window limiter shared across
// gateway replicas. Each client identity keeps a sorted set of request
// timestamps; a request is admitted only when fewer than limit requests
// fall inside the trailing window, so a quota spent late in one minute
// is still counted early in the next.
type RedisLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time

	windowScript *redis.Script
	seq          atomic.Int64
}

// NewRedisLimiter creates a limiter allowing limit requests per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:        client,
		limit:        limit,
		window:       window,
		now:          time.Now,
		windowScript: redis.NewScript(slidingWindowLuaScript),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("trustlens:ratelimit:%s", key)
	nowMicros := l.now().UnixMicro()
	windowMicros := l.window.Microseconds()

	// Members must be unique per request; two requests can land on the
	// same microsecond, so a process-local sequence breaks ties.
	member := fmt.Sprintf("%d-%d", nowMicros, l.seq.Add(1))

	result, err := l.windowScript.Run(ctx, l.redis, []string{redisKey},
		nowMicros, windowMicros, l.limit, member).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 1 {
		return false, fmt.Errorf("rate limit script: unexpected result %v", result)
	}
	allowed, _ := values[0].(int64)
	return allowed == 1, nil
}

// MemoryLimiter is a single-process fallback used when redis is not
// configured. It keeps per-client request timestamps and prunes the
// ones that have slid out of the window on each access.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

// NewMemoryLimiter creates an in-process limiter allowing limit requests
// per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, stamps := range l.history {
		if k == key {
			continue
		}
		if len(stamps) > 0 && !stamps[len(stamps)-1].After(cutoff) {
			delete(l.history, k)
		}
	}

	stamps := l.history[key]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.history[key] = kept
		return false, nil
	}
	l.history[key] = append(kept, now)
	return true, nil
}
