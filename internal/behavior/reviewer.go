package behavior

import (
	"fmt"
	"math"
	"sort"

	"github.com/trustlens/review-trust/internal/review"
)

// reviewerPatterns detects repeat reviewers and an unusually large
// unverified cohort. Output order is stable: by reviewer name, with the
// unverified aggregate last.
func (a *Analyzer) reviewerPatterns(reviews []review.Review) []ReviewerPattern {
	groups := make(map[string][]review.Review)
	for _, r := range reviews {
		if r.ReviewerName == "" {
			continue
		}
		groups[r.ReviewerName] = append(groups[r.ReviewerName], r)
	}

	names := make([]string, 0, len(groups))
	for name, rs := range groups {
		if len(rs) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var patterns []ReviewerPattern
	for _, name := range names {
		patterns = append(patterns, a.analyzeReviewer(name, groups[name]))
	}
	if p := a.unverifiedCohort(reviews); p != nil {
		patterns = append(patterns, *p)
	}
	return patterns
}

func (a *Analyzer) analyzeReviewer(name string, reviews []review.Review) ReviewerPattern {
	var flags []string
	var suspicion float64

	flags = append(flags, fmt.Sprintf("multiple_reviews_%dx", len(reviews)))
	suspicion += math.Min(0.5, float64(len(reviews))*0.2)

	var sum float64
	allFive := true
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating != 5.0 {
			allFive = false
		}
	}
	avg := sum / float64(len(reviews))

	var variance float64
	for _, r := range reviews {
		variance += (r.Rating - avg) * (r.Rating - avg)
	}
	variance /= float64(len(reviews))

	if variance == 0 {
		flags = append(flags, "identical_ratings")
		suspicion += 0.4
	}
	if allFive {
		flags = append(flags, "all_five_stars")
		suspicion += 0.3
	}

	return ReviewerPattern{
		ReviewerName:   name,
		ReviewCount:    len(reviews),
		AverageRating:  round2(avg),
		RatingVariance: round2(variance),
		Suspicion:      math.Min(1.0, round2(suspicion)),
		Flags:          flags,
	}
}

// unverifiedCohort emits a pseudo-reviewer when the unverified share of
// the batch crosses the threshold.
func (a *Analyzer) unverifiedCohort(reviews []review.Review) *ReviewerPattern {
	if len(reviews) == 0 {
		return nil
	}
	unverified := 0
	for _, r := range reviews {
		if !r.VerifiedPurchase {
			unverified++
		}
	}
	ratio := float64(unverified) / float64(len(reviews))
	if ratio <= a.cfg.UnverifiedThreshold {
		return nil
	}
	return &ReviewerPattern{
		ReviewerName: AggregateUnverified,
		ReviewCount:  unverified,
		Suspicion:    round2(math.Min(1.0, ratio)),
		Flags:        []string{fmt.Sprintf("high_unverified_ratio_%.0f%%", ratio*100)},
	}
}
