package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/trustlens/review-trust/internal/pkg/httputil"
	"github.com/trustlens/review-trust/internal/report"
	"github.com/trustlens/review-trust/internal/store"
)

// HealthStatus is the overall service health.
type HealthStatus struct {
	Status  string                    `json:"status"` // "healthy", "degraded", "unhealthy"
	Service string                    `json:"service"`
	Version string                    `json:"version"`
	Uptime  string                    `json:"uptime"`
	Checks  map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck is the health of a single dependency.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "not_configured"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	serviceName    = "TrustLens Review Trust API"
	serviceVersion = "1.0.0"
)

// HealthChecker probes the gateway's dependencies. Any dependency may
// be nil or empty; those report "not_configured".
type HealthChecker struct {
	cache      store.Store
	archive    *report.Archive
	scraperURL string
	httpClient *http.Client
	startTime  time.Time
}

// NewHealthChecker creates a checker over the configured dependencies.
func NewHealthChecker(cache store.Store, archive *report.Archive, scraperURL string) *HealthChecker {
	return &HealthChecker{
		cache:      cache,
		archive:    archive,
		scraperURL: scraperURL,
		httpClient: &http.Client{Timeout: 3 * time.Second},
		startTime:  time.Now(),
	}
}

// HandleHealth reports per-dependency status. Overall status is
// "healthy" when everything configured is up, "degraded" when the
// archive or scraper is down, and "unhealthy" when the cache is down.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]ComponentCheck{
		"redis":    hc.checkCache(ctx),
		"postgres": hc.checkArchive(ctx),
		"scraper":  hc.checkScraper(ctx),
	}

	status := "healthy"
	if checks["postgres"].Status == "down" || checks["scraper"].Status == "down" {
		status = "degraded"
	}
	if checks["redis"].Status == "down" {
		status = "unhealthy"
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	httputil.JSON(w, code, HealthStatus{
		Status:  status,
		Service: serviceName,
		Version: serviceVersion,
		Uptime:  time.Since(hc.startTime).Round(time.Second).String(),
		Checks:  checks,
	})
}

func (hc *HealthChecker) checkCache(ctx context.Context) ComponentCheck {
	if hc.cache == nil {
		return ComponentCheck{Status: "not_configured"}
	}
	start := time.Now()
	if err := hc.cache.Ping(ctx); err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	return ComponentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}

func (hc *HealthChecker) checkArchive(ctx context.Context) ComponentCheck {
	if hc.archive == nil {
		return ComponentCheck{Status: "not_configured"}
	}
	start := time.Now()
	if err := hc.archive.Ping(ctx); err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	return ComponentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}

func (hc *HealthChecker) checkScraper(ctx context.Context) ComponentCheck {
	if hc.scraperURL == "" {
		return ComponentCheck{Status: "not_configured", Message: "using built-in mock source"}
	}
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.scraperURL+"/health", nil)
	if err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ComponentCheck{Status: "down", Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return ComponentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}
