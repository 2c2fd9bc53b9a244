// Package scraper provides review acquisition: an HTTP client for the
// scraper service plus a deterministic mock source for development.
package scraper

import (
	"context"

	"github.com/trustlens/review-trust/internal/review"
)

// Result is one completed scrape: the review batch plus acquisition
// metadata reported by the source.
type Result struct {
	review.Batch
	Platform         string  `json:"platform"`
	ScrapingMethod   string  `json:"scraping_method"`
	SamplingStrategy string  `json:"sampling_strategy"`
	ProcessingTime   float64 `json:"processing_time_seconds"`
}

// ReviewSource fetches reviews for a product URL. Implementations must
// honor ctx cancellation and cap the batch at maxReviews.
type ReviewSource interface {
	Fetch(ctx context.Context, url string, maxReviews int) (*Result, error)
}
