package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisLockMutualExclusion(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	holder := NewRedisLock(client, "sweep", time.Minute)
	contender := NewRedisLock(client, "sweep", time.Minute)

	ok, err := holder.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = contender.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "held lease must not be granted twice")

	require.NoError(t, holder.Release(ctx))

	ok, err = contender.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "released lease is free for the next taker")
}

func TestRedisLockReleaseChecksOwnership(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	holder := NewRedisLock(client, "sweep", time.Minute)
	stranger := NewRedisLock(client, "sweep", time.Minute)

	ok, err := holder.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// A release from an instance that never held the lease is a no-op.
	require.NoError(t, stranger.Release(ctx))

	ok, err = stranger.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "holder's lease must survive a stranger's release")
}

func TestRedisLockSeparateKeys(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	sweep := NewRedisLock(client, "sweep", time.Minute)
	other := NewRedisLock(client, "reindex", time.Minute)

	ok, err := sweep.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = other.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "different lock names are independent leases")
}
