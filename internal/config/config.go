// Package config loads run configuration from the environment. Secrets are
// never embedded in code: a missing key simply disables the capability that
// needs it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// API keys (all optional; empty disables the capability)
	BraveAPIKey  string
	GeminiAPIKey string
	OpenAIAPIKey string

	// Store settings
	NewsFilePath string
	StoreStrict  bool // fail loudly on corrupt store instead of resetting

	// Source settings
	SourcesConfigPath string
	QueryDelay        time.Duration // pause between successive Brave queries
	MaxSearchArticles int           // cap of search results per run
	FeedEntryLimit    int           // newest entries taken per RSS feed
	FeedMaxAge        time.Duration // RSS entries older than this are skipped

	// AI settings
	MaxAIRequests int // per-run budget for summarizer/search calls (0 = unlimited)

	// Scraper settings
	ScrapeContentLimit int // max chars of extracted article text fed to the summarizer

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Scheduling / monitoring (optional daemon features)
	CronSpec       string // empty = single pass and exit
	EnableMonitor  bool
	MonitoringPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		NewsFilePath:       "news.json",
		SourcesConfigPath:  "configs/sources.yaml",
		QueryDelay:         3 * time.Second,
		MaxSearchArticles:  10,
		FeedEntryLimit:     5,
		FeedMaxAge:         7 * 24 * time.Hour,
		MaxAIRequests:      40,
		ScrapeContentLimit: 2000,
		RequestTimeout:     15 * time.Second,
		RetryAttempts:      3,
		RetryDelay:         2 * time.Second,
		MonitoringPort:     "8080",
	}

	cfg.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.NewsFilePath = getEnvOrDefault("NEWS_FILE_PATH", cfg.NewsFilePath)
	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.CronSpec = os.Getenv("CRON_SPEC")
	cfg.MonitoringPort = getEnvOrDefault("MONITORING_PORT", cfg.MonitoringPort)

	if os.Getenv("STORE_STRICT") == "true" {
		cfg.StoreStrict = true
	}
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		cfg.EnableMonitor = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)
	cfg.MaxSearchArticles = getEnvIntOrDefault("MAX_SEARCH_ARTICLES", cfg.MaxSearchArticles)
	cfg.FeedEntryLimit = getEnvIntOrDefault("FEED_ENTRY_LIMIT", cfg.FeedEntryLimit)
	cfg.ScrapeContentLimit = getEnvIntOrDefault("SCRAPE_CONTENT_LIMIT", cfg.ScrapeContentLimit)

	if v := os.Getenv("QUERY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.QueryDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("FEED_MAX_AGE_DAYS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FeedMaxAge = time.Duration(val) * 24 * time.Hour
		}
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsFilePath == "" {
		return fmt.Errorf("NEWS_FILE_PATH must not be empty")
	}
	if c.SourcesConfigPath == "" {
		return fmt.Errorf("SOURCES_CONFIG_PATH must not be empty")
	}
	if c.MaxSearchArticles <= 0 {
		return fmt.Errorf("MAX_SEARCH_ARTICLES must be positive")
	}
	if c.FeedEntryLimit <= 0 {
		return fmt.Errorf("FEED_ENTRY_LIMIT must be positive")
	}
	return nil
}
