// Package behavior detects manipulation signals that are invisible to
// text analysis: review bursts, rating spikes, repeat reviewers, and
// skewed rating distributions.
package behavior

import (
	"context"
	"math"
	"time"

	"github.com/trustlens/review-trust/internal/review"
)

// Analyzer runs the behavioral pipeline. Safe for concurrent use.
type Analyzer struct {
	cfg *Config
	now func() time.Time
}

func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{cfg: cfg, now: time.Now}
}

// Analyze runs the three sub-analyzers over the batch and folds their
// outputs into the weighted behavior fake score.
func (a *Analyzer) Analyze(ctx context.Context, batch *review.Batch) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	temporal := a.temporalPatterns(batch.Reviews)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reviewers := a.reviewerPatterns(batch.Reviews)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dist := a.ratingDistribution(batch.Reviews)

	return &Report{
		TotalReviews:       len(batch.Reviews),
		TemporalPatterns:   temporal,
		ReviewerPatterns:   reviewers,
		RatingDistribution: dist,
		Aggregates:         a.aggregate(batch.Reviews, temporal, reviewers, dist),
	}, nil
}

func (a *Analyzer) aggregate(reviews []review.Review, temporal []TemporalPattern, reviewers []ReviewerPattern, dist RatingDistribution) Aggregates {
	var agg Aggregates

	if len(temporal) > 0 {
		var sum float64
		for _, p := range temporal {
			sum += p.Suspicion
			switch p.PatternType {
			case PatternBurst:
				agg.HasBurstPattern = true
			case PatternRatingSpike:
				agg.HasRatingSpike = true
			case PatternRecencyBias:
				agg.HasRecencyBias = true
			}
		}
		agg.TemporalSuspicion = round3(sum / float64(len(temporal)))
	}

	if len(reviewers) > 0 {
		var sum float64
		for _, p := range reviewers {
			sum += p.Suspicion
			if p.ReviewCount > 1 && p.ReviewerName != AggregateUnverified {
				agg.DuplicateReviewers++
			}
		}
		agg.ReviewerSuspicion = round3(sum / float64(len(reviewers)))
	}

	if dist.Total > 0 {
		fiveStarRatio := float64(dist.FiveStar) / float64(dist.Total)
		if fiveStarRatio > a.cfg.HighFiveStarThreshold {
			agg.RatingSuspicion = math.Min(1.0, fiveStarRatio)
		}
		if dist.Polarization > agg.RatingSuspicion {
			agg.RatingSuspicion = dist.Polarization
		}
		agg.RatingSuspicion = round3(agg.RatingSuspicion)
		agg.FiveStarPercent = round2(fiveStarRatio * 100)
	}

	agg.FakeScore = round2((agg.TemporalSuspicion*a.cfg.TemporalWeight +
		agg.ReviewerSuspicion*a.cfg.ReviewerWeight +
		agg.RatingSuspicion*a.cfg.RatingWeight) * 100)

	if len(reviews) > 0 {
		verified := 0
		for _, r := range reviews {
			if r.VerifiedPurchase {
				verified++
			}
		}
		agg.VerificationRate = round2(float64(verified) / float64(len(reviews)) * 100)
	}
	agg.PolarizationDetected = dist.Polarization > 0.5

	return agg
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
