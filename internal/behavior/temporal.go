package behavior

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/trustlens/review-trust/internal/review"
)

// datedReview pairs a review with its parsed posting date.
type datedReview struct {
	date time.Time
	r    review.Review
}

// temporalPatterns detects bursts, rating spikes, and recency bias.
// Reviews with unparseable dates are excluded here but still count in
// every other analysis stage.
func (a *Analyzer) temporalPatterns(reviews []review.Review) []TemporalPattern {
	var dated []datedReview
	for _, r := range reviews {
		if r.Date == "" {
			continue
		}
		if t, ok := parseDate(r.Date); ok {
			dated = append(dated, datedReview{date: t, r: r})
		}
	}
	if len(dated) == 0 {
		return nil
	}
	sort.Slice(dated, func(i, j int) bool { return dated[i].date.Before(dated[j].date) })

	patterns := a.detectBursts(dated)
	patterns = append(patterns, a.detectRatingSpikes(dated)...)
	if p := a.detectRecencyBias(dated); p != nil {
		patterns = append(patterns, *p)
	}
	return patterns
}

// detectBursts slides each configured window over the date-sorted
// reviews and reports the earliest qualifying burst per window size.
func (a *Analyzer) detectBursts(dated []datedReview) []TemporalPattern {
	var patterns []TemporalPattern
	total := len(dated)
	minReviews := float64(a.cfg.BurstMinReviews)
	if pct := float64(total) * a.cfg.BurstMinPercentage; pct > minReviews {
		minReviews = pct
	}

	for _, days := range a.cfg.BurstWindowDays {
		window := fmt.Sprintf("%d day", days)
		if days > 1 {
			window += "s"
		}
		for i := range dated {
			end := dated[i].date.AddDate(0, 0, days)
			count := 0
			var ratingSum float64
			for j := i; j < total && !dated[j].date.After(end); j++ {
				count++
				ratingSum += dated[j].r.Rating
			}
			if float64(count) < minReviews {
				continue
			}
			concentration := float64(count) / float64(total)
			suspicion := math.Min(1.0, concentration*(30.0/float64(days)))
			patterns = append(patterns, TemporalPattern{
				PatternType:   PatternBurst,
				TimeWindow:    window,
				ReviewCount:   count,
				AverageRating: round2(ratingSum / float64(count)),
				Suspicion:     round2(suspicion),
				Description:   fmt.Sprintf("%d reviews posted within %s (suspicious burst)", count, window),
			})
			break
		}
	}
	return patterns
}

// detectRatingSpikes compares weekly rating averages and reports
// week-over-week jumps at or above the configured threshold.
func (a *Analyzer) detectRatingSpikes(dated []datedReview) []TemporalPattern {
	if len(dated) < a.cfg.MinReviewsForSpike {
		return nil
	}
	first := dated[0].date
	spanDays := int(dated[len(dated)-1].date.Sub(first).Hours() / 24)
	if spanDays < a.cfg.MinDaysForTemporal {
		return nil
	}

	weeks := make(map[int][]review.Review)
	for _, d := range dated {
		weekNum := int(d.date.Sub(first).Hours()/24) / 7
		weeks[weekNum] = append(weeks[weekNum], d.r)
	}
	nums := make([]int, 0, len(weeks))
	for n := range weeks {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var patterns []TemporalPattern
	for i := 0; i+1 < len(nums); i++ {
		w1, w2 := weeks[nums[i]], weeks[nums[i+1]]
		if len(w1) < a.cfg.MinReviewsPerWeek || len(w2) < a.cfg.MinReviewsPerWeek {
			continue
		}
		avg1, avg2 := meanRating(w1), meanRating(w2)
		if avg2-avg1 < a.cfg.SpikeRatingThreshold {
			continue
		}
		patterns = append(patterns, TemporalPattern{
			PatternType:   PatternRatingSpike,
			TimeWindow:    fmt.Sprintf("week %d to %d", nums[i], nums[i+1]),
			ReviewCount:   len(w2),
			AverageRating: round2(avg2),
			Suspicion:     round2(math.Min(1.0, (avg2-avg1)/2)),
			Description:   fmt.Sprintf("Sudden rating increase from %.1f to %.1f stars", avg1, avg2),
		})
	}
	return patterns
}

// detectRecencyBias flags batches where most reviews landed in the
// recent window, the signature of an ongoing seeding campaign.
func (a *Analyzer) detectRecencyBias(dated []datedReview) *TemporalPattern {
	if len(dated) < a.cfg.MinReviewsForSpike {
		return nil
	}
	cutoff := a.now().AddDate(0, 0, -a.cfg.RecencyDays)
	count := 0
	var ratingSum float64
	for _, d := range dated {
		if !d.date.Before(cutoff) {
			count++
			ratingSum += d.r.Rating
		}
	}
	ratio := float64(count) / float64(len(dated))
	if ratio <= a.cfg.RecencyThreshold {
		return nil
	}
	return &TemporalPattern{
		PatternType:   PatternRecencyBias,
		TimeWindow:    fmt.Sprintf("last %d days", a.cfg.RecencyDays),
		ReviewCount:   count,
		AverageRating: round2(ratingSum / float64(count)),
		Suspicion:     round2(math.Min(1.0, ratio)),
		Description:   fmt.Sprintf("%.0f%% of reviews posted in last %d days (possible campaign)", ratio*100, a.cfg.RecencyDays),
	}
}

func meanRating(reviews []review.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
