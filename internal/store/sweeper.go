package store

import (
	"context"
	"time"

	"github.com/trustlens/review-trust/internal/pkg/distlock"
	"github.com/trustlens/review-trust/internal/pkg/logger"
)

// Sweeper periodically removes expired cache entries. Lazy expiry on
// read handles hot keys; the sweeper reclaims entries nobody reads
// anymore. A distributed lock keeps concurrent replicas from sweeping
// the same keyspace at once.
type Sweeper struct {
	store    Store
	lock     distlock.DistLock // nil means sweep unconditionally
	interval time.Duration
}

// NewSweeper creates a sweeper over the given store. lock may be nil
// for single-instance deployments.
func NewSweeper(store Store, lock distlock.DistLock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, lock: lock, interval: interval}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.RunOnce(ctx)
			if err != nil {
				logger.Warn("cache sweep failed", "error", err)
			} else if removed > 0 {
				logger.Info("cache sweep complete", "removed_entries", removed)
			}
		}
	}
}

// RunOnce performs a single sweep. Returns 0 without error when another
// replica holds the sweep lock.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return 0, err
		}
		if !acquired {
			return 0, nil
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("sweep lock release failed", "error", err)
			}
		}()
	}
	return s.store.CleanupExpired(ctx)
}
