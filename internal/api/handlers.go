package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trustlens/review-trust/internal/pkg/httputil"
	"github.com/trustlens/review-trust/internal/pkg/logger"
	"github.com/trustlens/review-trust/internal/report"
	"github.com/trustlens/review-trust/internal/store"
	"github.com/trustlens/review-trust/internal/urlnorm"
)

// Handlers holds the gateway's HTTP handlers and their dependencies.
type Handlers struct {
	orch    *Orchestrator
	cache   store.Store     // nil disables cache endpoints
	archive *report.Archive // nil disables report endpoints
	limiter Limiter
	health  *HealthChecker

	requestTimeout time.Duration
}

// NewHandlers wires the handler set. cache and archive may be nil.
func NewHandlers(orch *Orchestrator, cache store.Store, archive *report.Archive, limiter Limiter, health *HealthChecker, requestTimeout time.Duration) *Handlers {
	if requestTimeout <= 0 {
		requestTimeout = 120 * time.Second
	}
	return &Handlers{
		orch:           orch,
		cache:          cache,
		archive:        archive,
		limiter:        limiter,
		health:         health,
		requestTimeout: requestTimeout,
	}
}

type analyzeRequest struct {
	ProductURL   string `json:"product_url"`
	ForceRefresh bool   `json:"force_refresh"`
}

// HandleAnalyze runs the full analysis pipeline for a product URL.
//
//	POST /analyze {"product_url": "...", "force_refresh": false}
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if !urlnorm.Validate(req.ProductURL) {
		writeError(w, ErrInvalidURL)
		return
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			// Limiter backend failures fail open.
			logger.Warn("rate limiter unavailable", "error", err)
		} else if !allowed {
			writeError(w, ErrRateLimited)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.orch.Analyze(ctx, req.ProductURL, req.ForceRefresh)
	if err != nil {
		logger.Error("analysis failed", "url", req.ProductURL, "error", err)
		writeError(w, err)
		return
	}
	httputil.OK(w, result)
}

// HandleRoot returns the service descriptor.
//
//	GET /
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"service":   serviceName,
		"status":    "healthy",
		"version":   serviceVersion,
		"platforms": urlnorm.SupportedPlatforms(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleCacheStats summarizes report cache occupancy.
//
//	GET /api/cache/stats
func (h *Handlers) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "cache not configured")
		return
	}
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, stats)
}

// HandleCacheCleanup sweeps expired cache entries.
//
//	POST /api/cache/cleanup
func (h *Handlers) HandleCacheCleanup(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "cache not configured")
		return
	}
	removed, err := h.cache.CleanupExpired(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"removed_entries": removed})
}

type invalidateRequest struct {
	URL string `json:"url"`
}

// HandleCacheInvalidate drops the cached report for a URL.
//
//	POST /api/cache/invalidate {"url": "..."}
func (h *Handlers) HandleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "cache not configured")
		return
	}
	var req invalidateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if !urlnorm.Validate(req.URL) {
		writeError(w, ErrInvalidURL)
		return
	}
	existed, err := h.cache.Invalidate(r.Context(), urlnorm.Fingerprint(req.URL))
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"invalidated": existed})
}

// HandleListReports lists archived reports, newest first.
//
//	GET /api/reports/list?risk_level=high&limit=50&offset=0
func (h *Handlers) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}
	filter := report.ListFilter{
		RiskLevel: r.URL.Query().Get("risk_level"),
		SortBy:    r.URL.Query().Get("sort_by"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}
	summaries, total, err := h.archive.List(r.Context(), filter)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"reports": summaries,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// HandleGetReport fetches one archived report by ID.
//
//	GET /api/reports/{id}
func (h *Handlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}
	id := chi.URLParam(r, "id")
	archived, err := h.archive.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			httputil.NotFound(w, "report not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, archived)
}

// HandleReportStats summarizes the report archive.
//
//	GET /api/reports/stats
func (h *Handlers) HandleReportStats(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}
	stats, err := h.archive.Stats(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, stats)
}

// HandleDeleteReport removes an archived report.
//
//	DELETE /api/reports/{id}
func (h *Handlers) HandleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "report archive not configured")
		return
	}
	id := chi.URLParam(r, "id")
	deleted, err := h.archive.Delete(r.Context(), id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if !deleted {
		httputil.NotFound(w, "report not found")
		return
	}
	httputil.OK(w, map[string]any{"deleted": true, "report_id": id})
}

// clientKey derives the rate-limit identity from the request. RealIP
// middleware has already resolved proxy headers into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
