// Package collector gathers raw news candidates from the configured origins:
// RSS feeds, Brave web search, and a language-model fallback when search comes
// up short. Every fetcher degrades to an empty result on failure; a broken
// origin never stops the run.
package collector

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RawArticle is one uncategorized, unsummarized candidate as a source yields
// it.
type RawArticle struct {
	Title       string
	Text        string
	URL         string
	Source      string
	PublishedAt *time.Time
}

// Fetcher abstracts one news origin.
type Fetcher interface {
	Name() string
	Fetch() ([]RawArticle, error)
}

// Feed is one configured RSS source.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Sources is the YAML configuration of all origins.
type Sources struct {
	Feeds   []Feed   `yaml:"feeds"`
	Queries []string `yaml:"queries"`
}

// LoadSources reads the feed and query lists from a YAML file.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var src Sources
	if err := yaml.NewDecoder(f).Decode(&src); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	return &src, nil
}
