package behavior

// Config holds the behavioral detection thresholds. Built once at
// startup; never mutated afterwards.
type Config struct {
	BurstWindowDays    []int
	BurstMinReviews    int
	BurstMinPercentage float64

	MinReviewsForSpike   int
	MinDaysForTemporal   int
	MinReviewsPerWeek    int
	SpikeRatingThreshold float64

	RecencyDays      int
	RecencyThreshold float64

	UnverifiedThreshold   float64
	PolarizationThreshold float64
	HighFiveStarThreshold float64

	TemporalWeight float64
	ReviewerWeight float64
	RatingWeight   float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() *Config {
	return &Config{
		BurstWindowDays:    []int{1, 3, 7, 30},
		BurstMinReviews:    10,
		BurstMinPercentage: 0.3,

		MinReviewsForSpike:   20,
		MinDaysForTemporal:   7,
		MinReviewsPerWeek:    5,
		SpikeRatingThreshold: 1.0,

		RecencyDays:      30,
		RecencyThreshold: 0.5,

		UnverifiedThreshold:   0.7,
		PolarizationThreshold: 0.7,
		HighFiveStarThreshold: 0.7,

		TemporalWeight: 0.4,
		ReviewerWeight: 0.3,
		RatingWeight:   0.3,
	}
}
