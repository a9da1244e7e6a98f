package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	const key = "TEST_NEWS_FILE_PATH"

	_ = os.Unsetenv(key)
	if got := getEnvOrDefault(key, "news.json"); got != "news.json" {
		t.Fatalf("getEnvOrDefault(%q) = %q, want %q", key, got, "news.json")
	}

	if err := os.Setenv(key, "other.json"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnvOrDefault(key, "news.json"); got != "other.json" {
		t.Fatalf("getEnvOrDefault(%q) = %q, want %q", key, got, "other.json")
	}
}

func TestGetEnvIntOrDefaultRejectsGarbage(t *testing.T) {
	const key = "TEST_MAX_AI_REQUESTS"
	_ = os.Setenv(key, "not-a-number")
	defer os.Unsetenv(key)

	if got := getEnvIntOrDefault(key, 40); got != 40 {
		t.Fatalf("getEnvIntOrDefault = %d, want default 40", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"NEWS_FILE_PATH", "SOURCES_CONFIG_PATH", "STORE_STRICT", "QUERY_DELAY_SECONDS", "MAX_AI_REQUESTS"} {
		_ = os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NewsFilePath != "news.json" {
		t.Errorf("NewsFilePath = %q, want news.json", cfg.NewsFilePath)
	}
	if cfg.StoreStrict {
		t.Errorf("StoreStrict should default to false (reset-on-corruption policy)")
	}
	if cfg.QueryDelay != 3*time.Second {
		t.Errorf("QueryDelay = %v, want 3s", cfg.QueryDelay)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	_ = os.Setenv("NEWS_FILE_PATH", "/tmp/test-news.json")
	_ = os.Setenv("STORE_STRICT", "true")
	_ = os.Setenv("QUERY_DELAY_SECONDS", "0")
	defer func() {
		_ = os.Unsetenv("NEWS_FILE_PATH")
		_ = os.Unsetenv("STORE_STRICT")
		_ = os.Unsetenv("QUERY_DELAY_SECONDS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NewsFilePath != "/tmp/test-news.json" {
		t.Errorf("NewsFilePath = %q", cfg.NewsFilePath)
	}
	if !cfg.StoreStrict {
		t.Errorf("StoreStrict not loaded from env")
	}
	if cfg.QueryDelay != 0 {
		t.Errorf("QueryDelay = %v, want 0", cfg.QueryDelay)
	}
}

func TestValidateRejectsEmptyStorePath(t *testing.T) {
	cfg := &Config{SourcesConfigPath: "x", MaxSearchArticles: 1, FeedEntryLimit: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate should reject empty NewsFilePath")
	}
}
