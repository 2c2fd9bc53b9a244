// Command scraper-stub serves the scraper service HTTP contract with
// synthetic reviews. Local development only; point SCRAPER_SERVICE_URL
// at it to exercise the full gateway pipeline without a real scraper.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/trustlens/review-trust/internal/pkg/httputil"
	"github.com/trustlens/review-trust/internal/scraper"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8002"
	}

	source := &scraper.MockSource{Seed: time.Now().UnixNano()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.OK(w, map[string]string{"status": "healthy", "service": "scraper-stub"})
	})
	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL        string `json:"url"`
			MaxReviews int    `json:"max_reviews"`
		}
		if !httputil.Decode(w, r, &req) {
			return
		}
		if req.MaxReviews <= 0 {
			req.MaxReviews = 30
		}

		start := time.Now()
		result, err := source.Fetch(r.Context(), req.URL, req.MaxReviews)
		if err != nil {
			httputil.InternalError(w, err)
			return
		}

		httputil.OK(w, map[string]any{
			"success":                 true,
			"platform":                result.Platform,
			"scraping_method":         result.ScrapingMethod,
			"product_metadata":        result.Metadata,
			"reviews":                 result.Reviews,
			"total_reviews_scraped":   len(result.Reviews),
			"sampling_strategy":       result.SamplingStrategy,
			"processing_time_seconds": time.Since(start).Seconds(),
		})
	})

	addr := fmt.Sprintf(":%s", port)
	log.Printf("scraper-stub listening on %s (synthetic reviews only)", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("scraper-stub: %v", err)
	}
}
