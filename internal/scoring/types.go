package scoring

// Risk bands, ordered from safest to worst.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Insight categories and severities.
const (
	CategoryRedFlag  = "red_flag"
	CategoryWarning  = "warning"
	CategoryPositive = "positive"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Insight is one human-readable finding surfaced in the final report.
type Insight struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
}

// Breakdown shows how much each signal contributed to the fake score.
type Breakdown struct {
	NLPContribution         float64 `json:"nlp_contribution"`
	BehaviorContribution    float64 `json:"behavior_contribution"`
	StatisticalContribution float64 `json:"statistical_contribution"`
	FinalScore              float64 `json:"final_score"`
}

// TrustReport is the final per-product verdict.
type TrustReport struct {
	TrustScore           int       `json:"trust_score"`
	FakeReviewsPercent   float64   `json:"fake_reviews_percentage"`
	RiskLevel            string    `json:"risk_level"`
	ScoreBreakdown       Breakdown `json:"score_breakdown"`
	KeyInsights          []Insight `json:"key_insights"`
	TotalReviewsAnalyzed int       `json:"total_reviews_analyzed"`
	Recommendation       string    `json:"recommendation"`
	Confidence           float64   `json:"confidence"`
	Timestamp            string    `json:"timestamp"`
}
