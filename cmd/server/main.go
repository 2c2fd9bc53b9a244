package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/trustlens/review-trust/internal/api"
	"github.com/trustlens/review-trust/internal/behavior"
	"github.com/trustlens/review-trust/internal/config"
	"github.com/trustlens/review-trust/internal/nlp"
	"github.com/trustlens/review-trust/internal/pkg/distlock"
	"github.com/trustlens/review-trust/internal/pkg/httpretry"
	"github.com/trustlens/review-trust/internal/report"
	"github.com/trustlens/review-trust/internal/scoring"
	"github.com/trustlens/review-trust/internal/scraper"
	"github.com/trustlens/review-trust/internal/store"
)

const cacheSweepInterval = time.Hour

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Report cache + rate limiter share one redis connection.
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	var cache store.Store
	var limiter api.Limiter
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis unavailable (%v); caching disabled, in-memory rate limiting", err)
		limiter = api.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow())
	} else {
		cache = store.NewRedisStoreWithClient(redisClient)
		limiter = api.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimitWindow())
		log.Println("Connected to redis")
	}
	pingCancel()

	// Report archive is optional; without DATABASE_URL the service runs
	// cache-only.
	var archive *report.Archive
	var db *sql.DB
	if cfg.Database.URL != "" {
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)

		dbCtx, dbCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(dbCtx); err != nil {
			log.Printf("Database unavailable (%v); report archive disabled", err)
		} else {
			archive = report.NewArchive(db)
			log.Println("Connected to database")
		}
		dbCancel()
	}

	var source scraper.ReviewSource
	scraperURL := cfg.Scraper.BaseURL
	if cfg.Scraper.UseMock || scraperURL == "" {
		source = &scraper.MockSource{Seed: 42}
		scraperURL = ""
		log.Println("Using built-in mock review source")
	} else {
		httpClient := &http.Client{Timeout: time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second}
		source = scraper.NewClient(scraperURL, httpretry.NewRetryClient(httpClient, cfg.Scraper.MaxRetries))
		log.Printf("Using scraper service at %s", scraperURL)
	}

	orch := api.NewOrchestrator(
		source,
		cache,
		archive,
		nlp.NewAnalyzer(nil),
		behavior.NewAnalyzer(nil),
		scoring.NewEngine(nil),
		cfg.Cache.TTLDays,
		cfg.Analysis.MaxReviews,
	)

	health := api.NewHealthChecker(cache, archive, scraperURL)
	handlers := api.NewHandlers(orch, cache, archive, limiter, health, cfg.RequestTimeout())
	server := api.NewServer(handlers, cfg.CORS.AllowedOrigins)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cache != nil {
		lock := distlock.NewRedisLock(redisClient, "cache-sweep", 5*time.Minute)
		sweeper := store.NewSweeper(cache, lock, cacheSweepInterval)
		go sweeper.Run(ctx)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
