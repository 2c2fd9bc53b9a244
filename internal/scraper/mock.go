package scraper

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/trustlens/review-trust/internal/review"
	"github.com/trustlens/review-trust/internal/urlnorm"
)

var mockTexts = []string{
	"Great product! Highly recommend for daily use.",
	"Not satisfied with the quality. Expected better.",
	"Amazing! Worth every penny. Will buy again.",
	"Decent product but delivery was delayed.",
	"Excellent quality and fast shipping.",
	"Product is okay but customer service needs improvement.",
	"Best purchase ever! Five stars all the way.",
	"Don't waste your money. Very disappointed.",
	"Good value for money. Happy with my purchase.",
	"Product works as described. No complaints.",
	"Quality could be better for the price.",
	"Exceeded my expectations! Love it.",
	"Average product, nothing special.",
	"Terrible experience, will not buy again.",
	"Perfectly matches the description.",
}

// MockSource generates synthetic batches without touching the network.
// A fixed seed keeps output reproducible across runs.
type MockSource struct {
	Seed int64
}

// Fetch produces up to maxReviews synthetic reviews (capped at 50).
func (m *MockSource) Fetch(ctx context.Context, url string, maxReviews int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(m.Seed))
	n := maxReviews
	if n > 50 {
		n = 50
	}
	if n < 0 {
		n = 0
	}

	reviews := make([]review.Review, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, review.Review{
			ReviewID:         fmt.Sprintf("mock_%d", i),
			ReviewerName:     fmt.Sprintf("User%d", i),
			Rating:           float64(rng.Intn(5) + 1),
			Title:            fmt.Sprintf("Review Title %d", i),
			Text:             mockTexts[rng.Intn(len(mockTexts))],
			Date:             fmt.Sprintf("2026-01-%02d", rng.Intn(13)+1),
			VerifiedPurchase: rng.Intn(2) == 0,
			HelpfulCount:     rng.Intn(51),
		})
	}

	return &Result{
		Batch: review.Batch{
			Reviews: reviews,
			Metadata: review.ProductMetadata{
				ProductName:   "Mock Product for Testing",
				Platform:      urlnorm.DetectPlatform(url),
				TotalRatings:  500,
				AverageRating: 4.2,
				RatingDistribution: map[string]int{
					"5_star": 60, "4_star": 20, "3_star": 10, "2_star": 5, "1_star": 5,
				},
			},
		},
		Platform:         urlnorm.DetectPlatform(url),
		ScrapingMethod:   "mock",
		SamplingStrategy: "mock_random",
	}, nil
}
