package api

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, limit int, window time.Duration) *RedisLimiter {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, limit, window)
}

func TestRedisLimiterEnforcesLimit(t *testing.T) {
	limiter := newRedisLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisLimiterWindowReset(t *testing.T) {
	limiter := newRedisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	base := time.Now()
	limiter.now = func() time.Time { return base }

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

// The window slides with the requests: a quota spent just before a
// minute mark must still be counted just after it, so a client can
// never get two full budgets back to back.
func TestRedisLimiterWindowSlides(t *testing.T) {
	limiter := newRedisLimiter(t, 10, time.Minute)
	ctx := context.Background()

	base := time.Now()
	limiter.now = func() time.Time { return base.Add(55 * time.Second) }

	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	// A fixed window keyed to minute boundaries would hand out a fresh
	// budget here. The trailing window still holds all ten requests.
	limiter.now = func() time.Time { return base.Add(62 * time.Second) }
	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "quota spent 7s ago must still count")

	// Once the earlier requests age past the window, capacity returns.
	limiter.now = func() time.Time { return base.Add(116 * time.Second) }
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterPerClientKeys(t *testing.T) {
	limiter := newRedisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "different clients get independent windows")
}

func TestMemoryLimiterEnforcesLimit(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	base := time.Now()
	limiter.now = func() time.Time { return base }

	allowed, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	assert.Len(t, limiter.history, 1, "idle clients pruned on access")
}

func TestMemoryLimiterWindowSlides(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	base := time.Now()
	clock := base
	limiter.now = func() time.Time { return clock }

	// Two early requests, one late in the window.
	for _, offset := range []time.Duration{0, 10 * time.Second, 55 * time.Second} {
		clock = base.Add(offset)
		allowed, _ := limiter.Allow(ctx, "10.0.0.1")
		require.True(t, allowed)
	}

	// Past the minute mark the late request is still inside the
	// trailing window, so only the two aged-out slots come back.
	clock = base.Add(62 * time.Second)
	allowed, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed, "request from 7s ago still holds a slot")
}
