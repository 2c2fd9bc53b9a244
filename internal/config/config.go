// Package config loads service configuration from YAML with .env and
// environment variable overrides.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// ScraperConfig points at the review scraper service.
type ScraperConfig struct {
	BaseURL        string `yaml:"base_url"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UseMock        bool   `yaml:"use_mock"`
}

// RedisConfig holds the report cache connection.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// DatabaseConfig holds the report archive connection. Empty URL
// disables archiving.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig controls report cache TTL.
type CacheConfig struct {
	TTLDays int `yaml:"ttl_days"`
}

// RateLimitConfig is the per-client sliding window bound.
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AnalysisConfig bounds a single analysis run.
type AnalysisConfig struct {
	MaxReviews int `yaml:"max_reviews"`
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// RateLimitWindow returns the sliding-window length.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

// Load reads the YAML config at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 120
	}
	if cfg.Scraper.BaseURL == "" {
		cfg.Scraper.BaseURL = "http://localhost:8002"
	}
	if cfg.Scraper.MaxRetries == 0 {
		cfg.Scraper.MaxRetries = 3
	}
	if cfg.Scraper.TimeoutSeconds == 0 {
		cfg.Scraper.TimeoutSeconds = 90
	}
	if cfg.Redis.URL == "" {
		cfg.Redis.URL = "redis://localhost:6379/0"
	}
	if cfg.Cache.TTLDays == 0 {
		cfg.Cache.TTLDays = 7
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Analysis.MaxReviews == 0 {
		cfg.Analysis.MaxReviews = 150
	}
}

// LoadFromEnv loads the YAML config then applies .env and environment
// variable overrides. A missing config file is not an error; defaults
// plus environment cover everything.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg *Config
	if _, err := os.Stat(path); err == nil {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &Config{}
		applyDefaults(cfg)
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := envInt("SERVER_PORT"); port > 0 {
		cfg.Server.Port = port
	}
	if secs := envInt("REQUEST_TIMEOUT_SECONDS"); secs > 0 {
		cfg.Server.RequestTimeoutSeconds = secs
	}
	if url := os.Getenv("SCRAPER_SERVICE_URL"); url != "" {
		cfg.Scraper.BaseURL = url
	}
	if secs := envInt("SCRAPER_TIMEOUT_SECONDS"); secs > 0 {
		cfg.Scraper.TimeoutSeconds = secs
	}
	if mock := os.Getenv("USE_MOCK_SCRAPER"); mock != "" {
		cfg.Scraper.UseMock = mock == "true" || mock == "1"
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if days := envInt("CACHE_TTL_DAYS"); days > 0 {
		cfg.Cache.TTLDays = days
	}
	if n := envInt("MAX_REVIEWS"); n > 0 {
		cfg.Analysis.MaxReviews = n
	}
	if n := envInt("RATE_LIMIT_REQUESTS"); n > 0 {
		cfg.RateLimit.Requests = n
	}
	if secs := envInt("RATE_LIMIT_WINDOW_SECONDS"); secs > 0 {
		cfg.RateLimit.WindowSeconds = secs
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = nil
		for _, p := range strings.Split(origins, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, p)
			}
		}
	}

	return cfg, nil
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
