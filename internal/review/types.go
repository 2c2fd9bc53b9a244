// Package review defines the shared data model that flows through the
// analysis pipeline: raw reviews from a ReviewSource, the immutable batch
// handed to the analyzers, and product metadata.
package review

// Review is a single product review as returned by a ReviewSource.
// Reviews are never mutated once a batch is assembled.
type Review struct {
	ReviewID         string  `json:"review_id"`
	ReviewerName     string  `json:"reviewer_name,omitempty"`
	Rating           float64 `json:"rating"` // 0.0 - 5.0
	Title            string  `json:"title,omitempty"`
	Text             string  `json:"text"`
	Date             string  `json:"date,omitempty"`
	VerifiedPurchase bool    `json:"verified_purchase"`
	HelpfulCount     int     `json:"helpful_count"`
}

// ProductMetadata describes the product whose reviews are being analyzed.
type ProductMetadata struct {
	ProductName        string         `json:"product_name"`
	Platform           string         `json:"platform"`
	TotalRatings       int            `json:"total_ratings,omitempty"`
	AverageRating      float64        `json:"average_rating,omitempty"`
	RatingDistribution map[string]int `json:"rating_distribution,omitempty"`
}

// Batch is one scrape result: an ordered, finite set of reviews plus
// product metadata. The orchestrator owns the batch for the duration of a
// request; analyzers receive it read-only and must not retain references.
type Batch struct {
	Reviews  []Review        `json:"reviews"`
	Metadata ProductMetadata `json:"product_metadata"`
}

// Len returns the number of reviews in the batch.
func (b *Batch) Len() int { return len(b.Reviews) }
