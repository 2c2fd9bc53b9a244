package behavior

// Pattern type identifiers emitted by the temporal analyzer.
const (
	PatternBurst       = "burst"
	PatternRatingSpike = "rating_spike"
	PatternRecencyBias = "recency_bias"
)

// AggregateUnverified is the pseudo-reviewer representing the
// unverified cohort when verification is unusually low.
const AggregateUnverified = "AGGREGATE_UNVERIFIED"

// TemporalPattern describes one detected timing anomaly.
type TemporalPattern struct {
	PatternType   string  `json:"pattern_type"`
	TimeWindow    string  `json:"time_window"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
	Suspicion     float64 `json:"suspicion_score"`
	Description   string  `json:"description"`
}

// ReviewerPattern describes one suspicious reviewer (or the unverified
// cohort aggregate).
type ReviewerPattern struct {
	ReviewerName   string   `json:"reviewer_name"`
	ReviewCount    int      `json:"review_count"`
	AverageRating  float64  `json:"average_rating"`
	RatingVariance float64  `json:"rating_variance"`
	Suspicion      float64  `json:"suspicion_score"`
	Flags          []string `json:"flags"`
}

// RatingDistribution is the integer-rounded star histogram with a
// polarization estimate.
type RatingDistribution struct {
	OneStar      int     `json:"one_star"`
	TwoStar      int     `json:"two_star"`
	ThreeStar    int     `json:"three_star"`
	FourStar     int     `json:"four_star"`
	FiveStar     int     `json:"five_star"`
	Total        int     `json:"total"`
	Polarization float64 `json:"polarization_score"`
}

// Aggregates are the batch-level behavioral metrics.
type Aggregates struct {
	TemporalSuspicion    float64 `json:"temporal_suspicion"`
	ReviewerSuspicion    float64 `json:"reviewer_suspicion"`
	RatingSuspicion      float64 `json:"rating_suspicion"`
	FakeScore            float64 `json:"behavior_fake_score"`
	HasBurstPattern      bool    `json:"has_burst_pattern"`
	HasRatingSpike       bool    `json:"has_rating_spike"`
	HasRecencyBias       bool    `json:"has_recency_bias"`
	DuplicateReviewers   int     `json:"duplicate_reviewers_count"`
	VerificationRate     float64 `json:"verification_rate"`
	PolarizationDetected bool    `json:"polarization_detected"`
	FiveStarPercent      float64 `json:"five_star_concentration"`
}

// Report is the full behavioral output for one batch.
type Report struct {
	TotalReviews       int                `json:"total_reviews"`
	TemporalPatterns   []TemporalPattern  `json:"temporal_patterns"`
	ReviewerPatterns   []ReviewerPattern  `json:"reviewer_patterns"`
	RatingDistribution RatingDistribution `json:"rating_distribution"`
	Aggregates         Aggregates         `json:"aggregate_metrics"`
}
