package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/review-trust/internal/behavior"
	"github.com/trustlens/review-trust/internal/nlp"
	"github.com/trustlens/review-trust/internal/scoring"
	"github.com/trustlens/review-trust/internal/scraper"
	"github.com/trustlens/review-trust/internal/store"
	"github.com/trustlens/review-trust/internal/urlnorm"
)

func newTestRouter(t *testing.T, source scraper.ReviewSource, cache store.Store, limiter Limiter) http.Handler {
	t.Helper()
	orch := NewOrchestrator(
		source,
		cache,
		nil,
		nlp.NewAnalyzer(nil),
		behavior.NewAnalyzer(nil),
		scoring.NewEngine(nil),
		7,
		150,
	)
	health := NewHealthChecker(cache, nil, "")
	h := NewHandlers(orch, cache, nil, limiter, health, 30*time.Second)
	return SetupRoutes(h, []string{"http://localhost:3000"})
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, &scraper.MockSource{Seed: 42}, nil, nil)

	rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: testProductURL})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TrustScore         int     `json:"trust_score"`
		FakeReviewsPercent float64 `json:"fake_reviews_percentage"`
		RiskLevel          string  `json:"risk_level"`
		Status             string  `json:"status"`
		Cached             bool    `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.False(t, resp.Cached)
	assert.GreaterOrEqual(t, resp.TrustScore, 0)
	assert.LessOrEqual(t, resp.TrustScore, 100)
	assert.NotEmpty(t, resp.RiskLevel)
}

func TestAnalyzeEndpointInvalidURL(t *testing.T) {
	router := newTestRouter(t, &scraper.MockSource{}, nil, nil)

	rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/analyze", analyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(t, &scraper.MockSource{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	router := newTestRouter(t, failingSource{}, nil, nil)

	rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: testProductURL})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAnalyzeEndpointRateLimited(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	router := newTestRouter(t, &scraper.MockSource{Seed: 42}, nil, limiter)

	for i := 0; i < 2; i++ {
		rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: testProductURL})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: testProductURL})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRootDescriptor(t *testing.T) {
	router := newTestRouter(t, &scraper.MockSource{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, serviceName, resp["service"])
	assert.Contains(t, resp, "platforms")
}

func TestHealthEndpoint(t *testing.T) {
	cache := newMiniredisStore(t)
	router := newTestRouter(t, &scraper.MockSource{}, cache, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.Checks["redis"].Status)
	assert.Equal(t, "not_configured", resp.Checks["postgres"].Status)
	assert.Equal(t, "not_configured", resp.Checks["scraper"].Status)
}

func TestCacheEndpoints(t *testing.T) {
	cache := newMiniredisStore(t)
	router := newTestRouter(t, &scraper.MockSource{Seed: 42}, cache, nil)

	rec := postJSON(t, router, "/analyze", analyzeRequest{ProductURL: testProductURL})
	require.Equal(t, http.StatusOK, rec.Code)

	fp := urlnorm.Fingerprint(testProductURL)
	require.Eventually(t, func() bool {
		_, err := cache.Get(context.Background(), fp)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
	statsRec := httptest.NewRecorder()
	router.ServeHTTP(statsRec, req)
	require.Equal(t, http.StatusOK, statsRec.Code)

	var stats store.Stats
	require.NoError(t, json.Unmarshal(statsRec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalEntries)

	invRec := postJSON(t, router, "/api/cache/invalidate", invalidateRequest{URL: testProductURL})
	require.Equal(t, http.StatusOK, invRec.Code)
	var inv map[string]bool
	require.NoError(t, json.Unmarshal(invRec.Body.Bytes(), &inv))
	assert.True(t, inv["invalidated"])

	_, err := cache.Get(context.Background(), fp)
	assert.ErrorIs(t, err, store.ErrNotFound)

	cleanupRec := postJSON(t, router, "/api/cache/cleanup", struct{}{})
	require.Equal(t, http.StatusOK, cleanupRec.Code)
}

func TestReportEndpointsWithoutArchive(t *testing.T) {
	router := newTestRouter(t, &scraper.MockSource{}, nil, nil)

	paths := []string{"/api/reports/list", "/api/reports/stats", "/api/reports/some-id"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, fmt.Sprintf("GET %s", path))
	}
}
