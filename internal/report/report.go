// Package report archives finished trust reports in PostgreSQL for
// listing, retrieval, and offline analysis. The archive is independent
// of the Redis cache: cache entries expire, archive rows persist until
// deleted.
package report

import (
	"errors"
	"time"

	"github.com/trustlens/review-trust/internal/scoring"
)

// ErrNotFound is returned when no archived report matches.
var ErrNotFound = errors.New("report: not found")

// ArchivedReport is one persisted trust report row.
type ArchivedReport struct {
	ReportID      string               `json:"report_id"`
	URL           string               `json:"url"`
	URLHash       string               `json:"url_hash"`
	NormalizedURL string               `json:"normalized_url"`
	Report        *scoring.TrustReport `json:"report"`
	TTLDays       int                  `json:"ttl_days"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	ExpiresAt     time.Time            `json:"expires_at"`
}

// ListFilter controls archive listing. SortBy accepts created_at,
// updated_at, or expires_at; anything else falls back to created_at.
type ListFilter struct {
	RiskLevel string
	SortBy    string
	Limit     int
	Offset    int
}

// Summary is the trimmed row returned by listings.
type Summary struct {
	ReportID   string    `json:"report_id"`
	URL        string    `json:"url"`
	TrustScore int       `json:"trust_score"`
	RiskLevel  string    `json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarizes the archive contents.
type Stats struct {
	TotalReports  int     `json:"total_reports"`
	ActiveReports int     `json:"active_reports"`
	AvgTrustScore float64 `json:"average_trust_score"`
	RiskBreakdown map[string]int `json:"risk_breakdown"`
}
