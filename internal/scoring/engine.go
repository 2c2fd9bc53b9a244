// Package scoring fuses the NLP, behavioral, and statistical signals
// into the final trust verdict with insights and a recommendation.
package scoring

import (
	"math"
	"time"

	"github.com/trustlens/review-trust/internal/behavior"
	"github.com/trustlens/review-trust/internal/nlp"
)

// Engine computes trust reports. Stateless and safe for concurrent use.
type Engine struct {
	cfg *Config
	now func() time.Time
}

func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg, now: time.Now}
}

// Score produces the final trust report from both analyzer outputs.
func (e *Engine) Score(nlpRep *nlp.Report, behRep *behavior.Report) *TrustReport {
	nlpFake := nlpRep.Aggregates.FakeScore
	behaviorFake := behRep.Aggregates.FakeScore
	statistical := e.statisticalScore(behRep.RatingDistribution)

	weightedFake := nlpFake*e.cfg.NLPWeight +
		behaviorFake*e.cfg.BehaviorWeight +
		statistical*e.cfg.StatisticalWeight

	trust := int(math.Max(0, math.Min(100, 100-weightedFake)))
	risk := e.classifyRisk(trust)

	return &TrustReport{
		TrustScore:         trust,
		FakeReviewsPercent: float64(100 - trust),
		RiskLevel:          risk,
		ScoreBreakdown: Breakdown{
			NLPContribution:         round2(nlpFake * e.cfg.NLPWeight),
			BehaviorContribution:    round2(behaviorFake * e.cfg.BehaviorWeight),
			StatisticalContribution: round2(statistical * e.cfg.StatisticalWeight),
			FinalScore:              round2(math.Max(0, math.Min(100, 100-weightedFake))),
		},
		KeyInsights:          e.insights(nlpRep, behRep),
		TotalReviewsAnalyzed: behRep.TotalReviews,
		Recommendation:       e.recommendation(trust),
		Confidence:           e.confidence(nlpFake, behaviorFake, behRep),
		Timestamp:            e.now().UTC().Format(time.RFC3339),
	}
}

// statisticalScore rates distribution anomalies on a 0-100 scale where
// higher means more suspicious.
func (e *Engine) statisticalScore(dist behavior.RatingDistribution) float64 {
	if dist.Total == 0 {
		return 0
	}
	var score float64
	total := float64(dist.Total)
	fiveStarRatio := float64(dist.FiveStar) / total

	switch {
	case fiveStarRatio > e.cfg.FiveStarCritical:
		score += 40
	case fiveStarRatio > e.cfg.FiveStarWarning:
		score += 25
	case fiveStarRatio > e.cfg.FiveStarNotice:
		score += 10
	}

	switch {
	case dist.Polarization > e.cfg.PolarizationCrit:
		score += 30
	case dist.Polarization > e.cfg.PolarizationWarning:
		score += 15
	}

	middleRatio := float64(dist.TwoStar+dist.ThreeStar+dist.FourStar) / total
	if middleRatio < e.cfg.MiddleRatioMin {
		score += 20
	}

	if dist.Total < e.cfg.SmallSampleSize && fiveStarRatio > e.cfg.SmallSampleFiveStar {
		score += 20
	}

	return math.Min(100, score)
}

// confidence estimates how much to trust the verdict itself, based on
// sample size, signal agreement, and verification coverage.
func (e *Engine) confidence(nlpFake, behaviorFake float64, behRep *behavior.Report) float64 {
	conf := e.cfg.BaseConfidence

	total := behRep.TotalReviews
	switch {
	case total >= e.cfg.LargeSampleSize:
		conf += 0.2
	case total >= e.cfg.MediumSampleSize:
		conf += 0.15
	case total >= e.cfg.SmallSampleConf:
		conf += 0.1
	}

	diff := math.Abs(nlpFake - behaviorFake)
	switch {
	case diff < e.cfg.StrongAgreement:
		conf += 0.2
	case diff < e.cfg.ModerateAgreement:
		conf += 0.1
	}

	if behRep.Aggregates.VerificationRate > e.cfg.HighVerificationPct {
		conf += 0.1
	}

	return math.Min(1.0, round2(conf))
}

func (e *Engine) classifyRisk(trust int) string {
	switch {
	case trust >= e.cfg.TrustExcellent:
		return RiskLow
	case trust >= e.cfg.TrustGood:
		return RiskMedium
	case trust >= e.cfg.TrustPoor:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func (e *Engine) recommendation(trust int) string {
	switch {
	case trust >= e.cfg.TrustExcellent:
		return "✅ RECOMMENDED: Reviews appear genuine. Safe to purchase based on review analysis."
	case trust >= e.cfg.TrustGood:
		return "⚠️ PROCEED WITH CAUTION: Some suspicious patterns detected. Research product further before buying."
	case trust >= e.cfg.TrustPoor:
		return "⚠️ NOT RECOMMENDED: Multiple red flags detected. Consider alternative products."
	default:
		return "🚫 AVOID: High likelihood of fake reviews. Do not trust the ratings."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
