package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trustlens/review-trust/internal/behavior"
	"github.com/trustlens/review-trust/internal/nlp"
)

var severityRank = map[string]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// insights collects findings from all three signal families, sorts by
// severity (stable within a band), and returns at most MaxInsights.
func (e *Engine) insights(nlpRep *nlp.Report, behRep *behavior.Report) []Insight {
	var out []Insight
	out = append(out, e.nlpInsights(nlpRep)...)
	out = append(out, e.behaviorInsights(behRep)...)
	out = append(out, e.statisticalInsights(behRep)...)

	sort.SliceStable(out, func(i, j int) bool {
		return severityRank[out[i].Severity] < severityRank[out[j].Severity]
	})
	if len(out) > e.cfg.MaxInsights {
		out = out[:e.cfg.MaxInsights]
	}
	return out
}

func (e *Engine) nlpInsights(rep *nlp.Report) []Insight {
	var out []Insight
	agg := rep.Aggregates

	switch {
	case agg.MeanFakeProb > e.cfg.HighFakeProb:
		out = append(out, Insight{
			Category:    CategoryRedFlag,
			Severity:    SeverityHigh,
			Title:       "High Fake Review Probability",
			Description: fmt.Sprintf("%.0f%% average fake probability detected across reviews", agg.MeanFakeProb*100),
			Evidence:    fmt.Sprintf("Text analysis flagged %d high-risk reviews", agg.HighRiskReviews),
		})
	case agg.MeanFakeProb > e.cfg.MediumFakeProb:
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Moderate Fake Review Risk",
			Description: fmt.Sprintf("%.0f%% average fake probability detected", agg.MeanFakeProb*100),
			Evidence:    "Multiple promotional patterns and template-style reviews found",
		})
	}

	if len(rep.Clusters) > 0 && agg.DuplicatePercent > e.cfg.DuplicatePctMin {
		out = append(out, Insight{
			Category:    CategoryRedFlag,
			Severity:    SeverityHigh,
			Title:       "Duplicate Reviews Detected",
			Description: fmt.Sprintf("%.1f%% of reviews are near-duplicates", agg.DuplicatePercent),
			Evidence:    fmt.Sprintf("Found %d clusters of similar reviews", len(rep.Clusters)),
		})
	}

	if len(agg.TopFlags) > 0 && agg.TopFlags[0].Count > 5 {
		top := agg.TopFlags[0]
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Repeated Pattern: " + titleCase(top.Flag),
			Description: fmt.Sprintf("Detected %d times across reviews", top.Count),
			Evidence:    "Consistent pattern suggests coordinated activity",
		})
	}

	var labelTotal int
	for _, n := range agg.SentimentHistogram {
		labelTotal += n
	}
	if labelTotal > 0 {
		positiveRatio := float64(agg.SentimentHistogram[nlp.LabelPositive]) / float64(labelTotal)
		if positiveRatio > e.cfg.UnusuallyPositive {
			out = append(out, Insight{
				Category:    CategoryWarning,
				Severity:    SeverityLow,
				Title:       "Unusually Positive Sentiment",
				Description: fmt.Sprintf("%.0f%% positive reviews (natural range: 60-75%%)", positiveRatio*100),
				Evidence:    "May indicate selection bias or fake positive reviews",
			})
		}
	}

	if len(rep.Reviews) > 0 && agg.MeanQuality < e.cfg.LowTextQuality {
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Low Review Quality",
			Description: fmt.Sprintf("Average text quality score: %.2f/1.0", agg.MeanQuality),
			Evidence:    "Many reviews lack detail or informational content",
		})
	}

	return out
}

func (e *Engine) behaviorInsights(rep *behavior.Report) []Insight {
	var out []Insight
	agg := rep.Aggregates

	if agg.HasBurstPattern {
		for _, p := range rep.TemporalPatterns {
			if p.PatternType != behavior.PatternBurst {
				continue
			}
			out = append(out, Insight{
				Category:    CategoryRedFlag,
				Severity:    SeverityHigh,
				Title:       "Review Burst Detected",
				Description: p.Description,
				Evidence:    fmt.Sprintf("Suspicion score: %.2f", p.Suspicion),
			})
			break
		}
	}

	if agg.HasRatingSpike {
		out = append(out, Insight{
			Category:    CategoryRedFlag,
			Severity:    SeverityHigh,
			Title:       "Sudden Rating Spike",
			Description: "Unusual sudden increase in average rating",
			Evidence:    "May indicate coordinated fake positive reviews",
		})
	}

	if agg.HasRecencyBias {
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Recency Bias Detected",
			Description: "Majority of reviews posted recently",
			Evidence:    "Possible ongoing review campaign",
		})
	}

	switch {
	case agg.VerificationRate < e.cfg.VeryLowVerifiedPct:
		out = append(out, Insight{
			Category:    CategoryRedFlag,
			Severity:    SeverityHigh,
			Title:       "Very Low Verification Rate",
			Description: fmt.Sprintf("Only %.0f%% verified purchases", agg.VerificationRate),
			Evidence:    "Most reviews not from verified buyers",
		})
	case agg.VerificationRate < e.cfg.LowVerifiedPct:
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Low Verification Rate",
			Description: fmt.Sprintf("%.0f%% verified purchases (typical: 70-80%%)", agg.VerificationRate),
			Evidence:    "Below-average verification ratio",
		})
	case agg.VerificationRate > e.cfg.HighVerificationPct:
		out = append(out, Insight{
			Category:    CategoryPositive,
			Severity:    SeverityLow,
			Title:       "High Verification Rate",
			Description: fmt.Sprintf("%.0f%% of reviews come from verified purchases", agg.VerificationRate),
			Evidence:    "Verified buyers dominate the review pool",
		})
	}

	if agg.DuplicateReviewers > 0 {
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Duplicate Reviewers Found",
			Description: fmt.Sprintf("%d reviewers posted multiple times", agg.DuplicateReviewers),
			Evidence:    "Same users leaving multiple reviews",
		})
	}

	if agg.PolarizationDetected {
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "Rating Polarization",
			Description: "Unnatural distribution with mostly 5-star and 1-star reviews",
			Evidence:    "Typical products have bell curve distribution",
		})
	}

	return out
}

func (e *Engine) statisticalInsights(rep *behavior.Report) []Insight {
	var out []Insight
	fiveStarPct := rep.Aggregates.FiveStarPercent

	switch {
	case fiveStarPct > e.cfg.ExtremeFiveStarPct:
		out = append(out, Insight{
			Category:    CategoryRedFlag,
			Severity:    SeverityHigh,
			Title:       "Extreme Five-Star Concentration",
			Description: fmt.Sprintf("%.0f%% of reviews are 5-star", fiveStarPct),
			Evidence:    "Natural products typically have 40-60% five-star reviews",
		})
	case fiveStarPct > e.cfg.HighFiveStarPct:
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityMedium,
			Title:       "High Five-Star Concentration",
			Description: fmt.Sprintf("%.0f%% five-star reviews (above typical range)", fiveStarPct),
			Evidence:    "May indicate fake positive reviews",
		})
	}

	if rep.RatingDistribution.Total < e.cfg.SmallSampleSize && fiveStarPct > 80 {
		out = append(out, Insight{
			Category:    CategoryWarning,
			Severity:    SeverityLow,
			Title:       "Limited Sample Size",
			Description: fmt.Sprintf("Analysis based on only %d reviews", rep.RatingDistribution.Total),
			Evidence:    "Small sample with high ratings may be misleading",
		})
	}

	return out
}

func titleCase(flag string) string {
	parts := strings.Split(flag, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
