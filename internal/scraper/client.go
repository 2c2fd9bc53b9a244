package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/trustlens/review-trust/internal/pkg/httpretry"
	"github.com/trustlens/review-trust/internal/review"
)

// Client talks to the scraper service over HTTP. Requests are retried
// with backoff on transient failures.
type Client struct {
	baseURL string
	http    httpretry.HTTPDoer
}

// NewClient builds a scraper client. If doer is nil a retrying client
// with default settings is used.
func NewClient(baseURL string, doer httpretry.HTTPDoer) *Client {
	if doer == nil {
		doer = httpretry.NewRetryClient(nil, 3)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
	}
}

type scrapeRequest struct {
	URL        string `json:"url"`
	MaxReviews int    `json:"max_reviews"`
}

type scrapeResponse struct {
	Success          bool                   `json:"success"`
	Platform         string                 `json:"platform"`
	ScrapingMethod   string                 `json:"scraping_method"`
	Metadata         review.ProductMetadata `json:"product_metadata"`
	Reviews          []review.Review        `json:"reviews"`
	TotalScraped     int                    `json:"total_reviews_scraped"`
	SamplingStrategy string                 `json:"sampling_strategy"`
	ProcessingTime   float64                `json:"processing_time_seconds"`
	Detail           string                 `json:"detail,omitempty"`
}

// Fetch posts the scrape request and decodes the review batch.
func (c *Client) Fetch(ctx context.Context, url string, maxReviews int) (*Result, error) {
	body, err := json.Marshal(scrapeRequest{URL: url, MaxReviews: maxReviews})
	if err != nil {
		return nil, fmt.Errorf("scraper: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scraper: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scraper: service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var sr scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("scraper: decode response: %w", err)
	}
	if !sr.Success {
		return nil, fmt.Errorf("scraper: scrape unsuccessful: %s", sr.Detail)
	}

	return &Result{
		Batch: review.Batch{
			Reviews:  sr.Reviews,
			Metadata: sr.Metadata,
		},
		Platform:         sr.Platform,
		ScrapingMethod:   sr.ScrapingMethod,
		SamplingStrategy: sr.SamplingStrategy,
		ProcessingTime:   sr.ProcessingTime,
	}, nil
}
