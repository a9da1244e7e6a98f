package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ohvali/ainews/internal/logger"
)

const descriptionLimit = 600

// RSSFetcher pulls recent entries from the configured feeds.
type RSSFetcher struct {
	feeds      []Feed
	entryLimit int
	maxAge     time.Duration
	parser     *gofeed.Parser
	now        func() time.Time
}

// NewRSSFetcher creates a fetcher over the given feeds, taking at most
// entryLimit newest entries per feed and skipping entries older than maxAge.
func NewRSSFetcher(feeds []Feed, entryLimit int, maxAge time.Duration) *RSSFetcher {
	return &RSSFetcher{
		feeds:      feeds,
		entryLimit: entryLimit,
		maxAge:     maxAge,
		parser:     gofeed.NewParser(),
		now:        time.Now,
	}
}

func (f *RSSFetcher) Name() string { return "rss" }

// Fetch parses every configured feed. A feed that fails to download or parse
// is logged and skipped; Fetch itself only errors when no feed is configured.
func (f *RSSFetcher) Fetch() ([]RawArticle, error) {
	if len(f.feeds) == 0 {
		return nil, fmt.Errorf("no RSS feeds configured")
	}

	var all []RawArticle
	okCount := 0

	for _, feed := range f.feeds {
		feedData, err := f.parser.ParseURL(feed.URL)
		if err != nil {
			logger.Warn("rss feed failed", "feed", feed.Name, "url", feed.URL, "error", err)
			continue
		}
		okCount++

		taken := 0
		for _, entry := range feedData.Items {
			if taken >= f.entryLimit {
				break
			}

			published := entryTime(entry)
			if published != nil && f.now().Sub(*published) > f.maxAge {
				continue
			}

			all = append(all, RawArticle{
				Title:       strings.TrimSpace(entry.Title),
				Text:        stripHTML(entry.Description, descriptionLimit),
				URL:         entry.Link,
				Source:      feed.Name,
				PublishedAt: published,
			})
			taken++
		}

		logger.Info("rss feed loaded", "feed", feed.Name, "taken", taken)
	}

	logger.Info("rss feeds processed", "ok", okCount, "total", len(f.feeds))
	return all, nil
}

func entryTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}

// stripHTML flattens a feed entry description to plain text and caps it.
func stripHTML(s string, limit int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		s = doc.Text()
	}
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > limit {
		s = string(runes[:limit])
	}
	return s
}
