package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/review-trust/internal/review"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/scrape", r.URL.Path)

		var req scrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://amazon.in/dp/B0TEST", req.URL)
		assert.Equal(t, 150, req.MaxReviews)

		json.NewEncoder(w).Encode(scrapeResponse{
			Success:          true,
			Platform:         "amazon",
			ScrapingMethod:   "manual",
			SamplingStrategy: "recent_first",
			Metadata:         review.ProductMetadata{ProductName: "Widget", Platform: "amazon"},
			Reviews: []review.Review{
				{ReviewID: "r1", Rating: 5, Text: "Great product"},
				{ReviewID: "r2", Rating: 2, Text: "Broke in a week"},
			},
			TotalScraped: 2,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	res, err := c.Fetch(context.Background(), "https://amazon.in/dp/B0TEST", 150)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Len())
	assert.Equal(t, "amazon", res.Platform)
	assert.Equal(t, "manual", res.ScrapingMethod)
	assert.Equal(t, "recent_first", res.SamplingStrategy)
	assert.Equal(t, "Widget", res.Metadata.ProductName)
}

func TestClientFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "https://example.com/p/1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClientFetchUnsuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scrapeResponse{Success: false, Detail: "platform blocked"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "https://example.com/p/1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform blocked")
}

func TestClientFetchRetriesTransient(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(scrapeResponse{Success: true, Platform: "other"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res, err := c.Fetch(context.Background(), "https://example.com/p/1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "other", res.Platform)
}

func TestMockSourceDeterministic(t *testing.T) {
	m := &MockSource{Seed: 42}

	first, err := m.Fetch(context.Background(), "https://flipkart.com/p/x", 30)
	require.NoError(t, err)
	second, err := m.Fetch(context.Background(), "https://flipkart.com/p/x", 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 30, first.Len())
	assert.Equal(t, "flipkart", first.Platform)
	assert.Equal(t, "mock", first.ScrapingMethod)
	for _, r := range first.Reviews {
		assert.GreaterOrEqual(t, r.Rating, 1.0)
		assert.LessOrEqual(t, r.Rating, 5.0)
	}
}

func TestMockSourceCaps(t *testing.T) {
	m := &MockSource{Seed: 1}
	res, err := m.Fetch(context.Background(), "https://example.com/p/1", 500)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Len())
}
