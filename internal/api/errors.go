package api

import (
	"errors"
	"net/http"

	"github.com/trustlens/review-trust/internal/pkg/httputil"
)

// Request-level failure classes. Handlers map these to HTTP statuses;
// everything unclassified is a 500.
var (
	// ErrInvalidURL marks a product URL that fails validation.
	ErrInvalidURL = errors.New("invalid product URL")

	// ErrRateLimited marks a client that exceeded its request budget.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUpstream marks a scraper or analyzer failure. The report is
	// all-or-nothing, so any upstream failure aborts the request.
	ErrUpstream = errors.New("upstream analysis failure")
)

// writeError maps a pipeline error onto the JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidURL):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, ErrRateLimited):
		httputil.Error(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrUpstream):
		httputil.Error(w, http.StatusBadGateway, err.Error())
	default:
		httputil.InternalError(w, err)
	}
}
