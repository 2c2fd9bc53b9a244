package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/trustlens/review-trust/internal/behavior"
	"github.com/trustlens/review-trust/internal/nlp"
	"github.com/trustlens/review-trust/internal/pkg/logger"
	"github.com/trustlens/review-trust/internal/report"
	"github.com/trustlens/review-trust/internal/review"
	"github.com/trustlens/review-trust/internal/scoring"
	"github.com/trustlens/review-trust/internal/scraper"
	"github.com/trustlens/review-trust/internal/store"
	"github.com/trustlens/review-trust/internal/urlnorm"
)

// persistTimeout bounds the detached cache+archive write after a
// response has already been returned.
const persistTimeout = 10 * time.Second

// Orchestrator runs the analysis pipeline for one product URL:
// cache check, scrape, parallel NLP + behavior analysis, score fusion,
// and asynchronous persistence.
type Orchestrator struct {
	source   scraper.ReviewSource
	cache    store.Store     // nil disables caching
	archive  *report.Archive // nil disables archiving
	nlp      *nlp.Analyzer
	behavior *behavior.Analyzer
	engine   *scoring.Engine

	ttlDays    int
	maxReviews int
	now        func() time.Time
}

// NewOrchestrator wires the pipeline stages together. cache and archive
// may be nil; both are advisory.
func NewOrchestrator(
	source scraper.ReviewSource,
	cache store.Store,
	archive *report.Archive,
	nlpAnalyzer *nlp.Analyzer,
	behaviorAnalyzer *behavior.Analyzer,
	engine *scoring.Engine,
	ttlDays, maxReviews int,
) *Orchestrator {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	if maxReviews <= 0 {
		maxReviews = 150
	}
	return &Orchestrator{
		source:     source,
		cache:      cache,
		archive:    archive,
		nlp:        nlpAnalyzer,
		behavior:   behaviorAnalyzer,
		engine:     engine,
		ttlDays:    ttlDays,
		maxReviews: maxReviews,
		now:        time.Now,
	}
}

// AnalyzeResult is the gateway response for one analysis: the trust
// report plus whether it was served from cache.
type AnalyzeResult struct {
	*scoring.TrustReport
	Status string `json:"status"`
	Cached bool   `json:"cached"`
}

// Analyze produces a trust report for rawURL. With forceRefresh the
// cached entry is invalidated and the pipeline runs end to end.
func (o *Orchestrator) Analyze(ctx context.Context, rawURL string, forceRefresh bool) (*AnalyzeResult, error) {
	if !urlnorm.Validate(rawURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	fp := urlnorm.Fingerprint(rawURL)
	normalized := urlnorm.Normalize(rawURL)

	if o.cache != nil {
		if forceRefresh {
			if _, err := o.cache.Invalidate(ctx, fp); err != nil {
				logger.Warn("cache invalidate failed", "fingerprint", fp, "error", err)
			}
		} else if entry, err := o.cache.Get(ctx, fp); err == nil && entry.Report != nil {
			logger.Info("cache hit", "fingerprint", fp, "access_count", entry.AccessCount)
			return &AnalyzeResult{TrustReport: entry.Report, Status: "success", Cached: true}, nil
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			logger.Warn("cache lookup failed, treating as miss", "fingerprint", fp, "error", err)
		}
	}

	result, err := o.source.Fetch(ctx, rawURL, o.maxReviews)
	if err != nil {
		return nil, fmt.Errorf("%w: scrape: %v", ErrUpstream, err)
	}
	batch := &result.Batch
	logger.Info("scrape complete",
		"fingerprint", fp,
		"platform", result.Platform,
		"reviews", batch.Len(),
	)

	nlpRep, behRep, err := o.runAnalyzers(ctx, batch)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	trustReport := o.engine.Score(nlpRep, behRep)

	go o.persist(rawURL, normalized, fp, trustReport)

	return &AnalyzeResult{TrustReport: trustReport, Status: "success", Cached: false}, nil
}

// runAnalyzers fans the batch out to both analyzers and joins. Either
// failure is fatal; scoring is all-or-nothing across the two signals.
func (o *Orchestrator) runAnalyzers(ctx context.Context, batch *review.Batch) (*nlp.Report, *behavior.Report, error) {
	var (
		wg     sync.WaitGroup
		nlpRep *nlp.Report
		behRep *behavior.Report
		nlpErr error
		behErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		nlpRep, nlpErr = o.nlp.Analyze(ctx, batch)
	}()
	go func() {
		defer wg.Done()
		behRep, behErr = o.behavior.Analyze(ctx, batch)
	}()
	wg.Wait()

	if nlpErr != nil {
		return nil, nil, fmt.Errorf("nlp analyzer: %w", nlpErr)
	}
	if behErr != nil {
		return nil, nil, fmt.Errorf("behavior analyzer: %w", behErr)
	}
	return nlpRep, behRep, nil
}

// persist writes the finished report to the cache and the archive.
// Runs detached from the request; failures are logged, never surfaced.
func (o *Orchestrator) persist(rawURL, normalized, fp string, rep *scoring.TrustReport) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if o.cache != nil {
		entry := &store.CacheEntry{
			Fingerprint:   fp,
			OriginalURL:   rawURL,
			NormalizedURL: normalized,
			Report:        rep,
		}
		if err := o.cache.Put(ctx, entry, o.ttlDays); err != nil {
			logger.Warn("cache write failed", "fingerprint", fp, "error", err)
		}
	}

	if o.archive != nil {
		if _, err := o.archive.Save(ctx, rawURL, fp, normalized, rep, o.ttlDays); err != nil {
			logger.Warn("archive write failed", "fingerprint", fp, "error", err)
		}
	}
}
