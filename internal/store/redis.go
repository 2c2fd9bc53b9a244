package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "trustlens:report:"

// RedisStore is the production Store backed by Redis. Entries carry a
// native key TTL and an embedded expires_at for lazy double-checking.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore connects using a redis URL (redis://host:port/db).
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("store: invalid redis URL: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opts)), nil
}

// NewRedisStoreWithClient wraps an existing client; used by tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) key(fp string) string { return keyPrefix + fp }

// Get fetches the entry, enforces lazy expiry, and bumps access
// counters in place without extending the TTL.
func (s *RedisStore) Get(ctx context.Context, fp string) (*CacheEntry, error) {
	raw, err := s.client.Get(ctx, s.key(fp)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", fp, err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("store: decode entry %s: %w", fp, err)
	}

	now := s.now()
	if entry.Expired(now) {
		s.client.Del(ctx, s.key(fp))
		return nil, ErrNotFound
	}

	entry.AccessCount++
	entry.LastAccessed = now
	if updated, err := json.Marshal(&entry); err == nil {
		s.client.Set(ctx, s.key(fp), updated, redis.KeepTTL)
	}

	return &entry, nil
}

func (s *RedisStore) Put(ctx context.Context, entry *CacheEntry, ttlDays int) error {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	now := s.now()
	entry.CachedAt = now
	entry.ExpiresAt = now.AddDate(0, 0, ttlDays)
	entry.TTLDays = ttlDays

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: encode entry %s: %w", entry.Fingerprint, err)
	}
	ttl := time.Duration(ttlDays) * 24 * time.Hour
	if err := s.client.Set(ctx, s.key(entry.Fingerprint), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store: put %s: %w", entry.Fingerprint, err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, fp string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(fp)).Result()
	if err != nil {
		return false, fmt.Errorf("store: invalidate %s: %w", fp, err)
	}
	return n > 0, nil
}

// CleanupExpired sweeps entries whose embedded expiry has passed.
// Redis evicts on TTL anyway; the sweep covers entries written with a
// longer key TTL than their logical expiry.
func (s *RedisStore) CleanupExpired(ctx context.Context) (int, error) {
	removed := 0
	now := s.now()
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var entry CacheEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Expired(now) {
			if s.client.Del(ctx, key).Val() > 0 {
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("store: cleanup scan: %w", err)
	}
	return removed, nil
}

func (s *RedisStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now()
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var entry CacheEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		stats.TotalEntries++
		if entry.Expired(now) {
			stats.Expired++
		} else {
			stats.ValidEntries++
		}
		cachedAt := entry.CachedAt
		if stats.OldestCached == nil || cachedAt.Before(*stats.OldestCached) {
			t := cachedAt
			stats.OldestCached = &t
		}
		if stats.NewestCached == nil || cachedAt.After(*stats.NewestCached) {
			t := cachedAt
			stats.NewestCached = &t
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("store: stats scan: %w", err)
	}
	return stats, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
