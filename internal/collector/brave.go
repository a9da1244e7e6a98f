package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ohvali/ainews/internal/logger"
	"github.com/ohvali/ainews/internal/retry"
)

const (
	braveEndpoint         = "https://api.search.brave.com/res/v1/web/search"
	braveResultsPerQuery  = 5
	braveMaxResponseBytes = 1 << 20 // 1MB
)

// skipDomains are hosts that return discussion or reference pages rather than
// news articles.
var skipDomains = []string{
	"youtube.com", "reddit.com", "twitter.com", "x.com",
	"linkedin.com", "facebook.com", "wikipedia.org",
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

// BraveFetcher queries the Brave Search API for fresh articles.
type BraveFetcher struct {
	apiKey     string
	queries    []string
	queryDelay time.Duration
	maxResults int
	client     *http.Client
	retryCfg   retry.Config
	sleep      func(time.Duration)
	endpoint   string
}

// NewBraveFetcher creates a fetcher over the given search queries with a fixed
// delay between consecutive queries, respecting the API's rate limits.
func NewBraveFetcher(apiKey string, queries []string, queryDelay time.Duration, maxResults int, timeout time.Duration, retryCfg retry.Config) *BraveFetcher {
	return &BraveFetcher{
		apiKey:     apiKey,
		queries:    queries,
		queryDelay: queryDelay,
		maxResults: maxResults,
		client:     &http.Client{Timeout: timeout},
		retryCfg:   retryCfg,
		sleep:      time.Sleep,
		endpoint:   braveEndpoint,
	}
}

func (f *BraveFetcher) Name() string { return "brave_search" }

// Fetch runs every configured query sequentially, deduplicating by URL across
// queries and capping the total result count. Without an API key it returns
// nothing, so the capability quietly stays off.
func (f *BraveFetcher) Fetch() ([]RawArticle, error) {
	if f.apiKey == "" {
		logger.Info("brave search disabled, no API key")
		return nil, nil
	}

	var articles []RawArticle
	seen := make(map[string]struct{})

	for i, query := range f.queries {
		if i > 0 && f.queryDelay > 0 {
			f.sleep(f.queryDelay)
		}

		results, err := f.search(query)
		if err != nil {
			logger.Warn("brave query failed", "query", query, "error", err)
			continue
		}

		for _, r := range results {
			if r.URL == "" || r.Title == "" {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}

			if isSkippedDomain(r.URL) {
				continue
			}

			articles = append(articles, RawArticle{
				Title:  r.Title,
				Text:   r.Description,
				URL:    r.URL,
				Source: SourceNameFromURL(r.URL),
			})

			if len(articles) >= f.maxResults {
				logger.Info("brave search capped", "count", len(articles))
				return articles, nil
			}
		}
	}

	return articles, nil
}

func (f *BraveFetcher) search(query string) ([]braveResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprint(braveResultsPerQuery))
	params.Set("freshness", "pd") // past day only
	params.Set("search_lang", "en")

	var parsed braveResponse
	err := retry.WithRetry(context.Background(), f.retryCfg, func() error {
		req, err := http.NewRequest(http.MethodGet, f.endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", f.apiKey)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("brave search: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("brave search: status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, braveMaxResponseBytes))
		if err != nil {
			return fmt.Errorf("brave search: read body: %w", err)
		}
		return json.Unmarshal(body, &parsed)
	})
	if err != nil {
		return nil, err
	}

	return parsed.Web.Results, nil
}

func isSkippedDomain(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, d := range skipDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// SourceNameFromURL derives a display name for the publisher from the URL
// host: "https://www.techcrunch.com/x" becomes "Techcrunch".
func SourceNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Unknown"
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
