package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/review-trust/internal/scoring"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedisStoreWithClient(client), mr
}

func sampleEntry(fp string) *CacheEntry {
	return &CacheEntry{
		Fingerprint:   fp,
		OriginalURL:   "https://www.amazon.in/dp/X?utm_source=mail",
		NormalizedURL: "https://amazon.in/dp/X",
		Report: &scoring.TrustReport{
			TrustScore:         72,
			FakeReviewsPercent: 28,
			RiskLevel:          scoring.RiskMedium,
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleEntry("abc123"), 7))

	got, err := s.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, 72, got.Report.TrustScore)
	assert.Equal(t, 7, got.TTLDays)
	assert.Equal(t, int64(1), got.AccessCount)
	assert.False(t, got.LastAccessed.IsZero())
}

func TestGetMiss(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccessCountIncrements(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sampleEntry("fp1"), 7))

	for i := 1; i <= 3; i++ {
		got, err := s.Get(ctx, "fp1")
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.AccessCount)
	}
}

func TestLazyExpiry(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sampleEntry("fp1"), 1))

	// move the store clock past the embedded expiry
	s.now = func() time.Time { return time.Now().AddDate(0, 0, 2) }

	_, err := s.Get(ctx, "fp1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertReplacesEntry(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := sampleEntry("fp1")
	require.NoError(t, s.Put(ctx, first, 7))

	second := sampleEntry("fp1")
	second.Report.TrustScore = 31
	require.NoError(t, s.Put(ctx, second, 7))

	got, err := s.Get(ctx, "fp1")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Report.TrustScore)
}

func TestInvalidate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sampleEntry("fp1"), 7))

	existed, err := s.Invalidate(ctx, "fp1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Invalidate(ctx, "fp1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCleanupExpired(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleEntry("old"), 1))
	require.NoError(t, s.Put(ctx, sampleEntry("fresh"), 7))

	s.now = func() time.Time { return time.Now().AddDate(0, 0, 3) }

	removed, err := s.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleEntry("a"), 7))
	require.NoError(t, s.Put(ctx, sampleEntry("b"), 7))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 2, stats.ValidEntries)
	assert.Zero(t, stats.Expired)
	require.NotNil(t, stats.OldestCached)
	require.NotNil(t, stats.NewestCached)
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
