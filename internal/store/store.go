// Package store caches trust reports keyed by URL fingerprint. The
// cache is advisory: callers treat every error here as a miss.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/trustlens/review-trust/internal/scoring"
)

// ErrNotFound is returned when no live entry exists for a fingerprint.
var ErrNotFound = errors.New("store: entry not found")

// CacheEntry wraps a cached trust report with its cache bookkeeping.
type CacheEntry struct {
	Fingerprint   string               `json:"url_hash"`
	OriginalURL   string               `json:"original_url"`
	NormalizedURL string               `json:"normalized_url"`
	Report        *scoring.TrustReport `json:"report"`
	CachedAt      time.Time            `json:"cached_at"`
	ExpiresAt     time.Time            `json:"expires_at"`
	TTLDays       int                  `json:"ttl_days"`
	AccessCount   int64                `json:"access_count"`
	LastAccessed  time.Time            `json:"last_accessed"`
}

// Expired reports whether the entry is past its expiry at t.
func (e *CacheEntry) Expired(t time.Time) bool {
	return t.After(e.ExpiresAt)
}

// Stats summarizes cache occupancy.
type Stats struct {
	TotalEntries int        `json:"total_entries"`
	ValidEntries int        `json:"valid_entries"`
	Expired      int        `json:"expired_entries"`
	OldestCached *time.Time `json:"oldest_cache,omitempty"`
	NewestCached *time.Time `json:"newest_cache,omitempty"`
}

// Store is the report cache contract. At most one live entry exists per
// fingerprint; writes are last-writer-wins.
type Store interface {
	// Get returns the live entry for fp, bumping its access counters.
	// Returns ErrNotFound for missing or expired entries.
	Get(ctx context.Context, fp string) (*CacheEntry, error)

	// Put upserts the entry under fp with a TTL of ttlDays.
	Put(ctx context.Context, entry *CacheEntry, ttlDays int) error

	// Invalidate drops the entry for fp, reporting whether one existed.
	Invalidate(ctx context.Context, fp string) (bool, error)

	// CleanupExpired removes entries past expiry, returning the count.
	CleanupExpired(ctx context.Context) (int, error)

	// Stats summarizes cache occupancy.
	Stats(ctx context.Context) (*Stats, error)

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error
}
