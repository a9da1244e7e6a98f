// Package scraper pulls article text and preview images from publisher pages.
// Everything here is best effort: a page that cannot be fetched or parsed
// yields an error (or an empty image) and the pipeline carries on with what
// the feed or search result already provided.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ohvali/ainews/internal/retry"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Scraper fetches publisher pages with a bounded timeout.
type Scraper struct {
	client        *http.Client
	retryAttempts int
	retryDelay    time.Duration
	contentLimit  int
}

// New creates a scraper. contentLimit caps the extracted text length in runes;
// zero means a 2000-rune default, matching what the summarizer prompt can take.
func New(timeout time.Duration, retryAttempts int, retryDelay time.Duration, contentLimit int) *Scraper {
	if contentLimit <= 0 {
		contentLimit = 2000
	}
	return &Scraper{
		client:        &http.Client{Timeout: timeout},
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
		contentLimit:  contentLimit,
	}
}

func (s *Scraper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := retry.WithRetry(ctx, retry.Config{MaxAttempts: s.retryAttempts, Delay: s.retryDelay}, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("parse %s: %w", url, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ExtractText returns the main article text of the page at url, capped at the
// configured length.
func (s *Scraper) ExtractText(ctx context.Context, url string) (string, error) {
	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}

	// Navigation, scripts and boilerplate only pollute the summary input.
	doc.Find("script, style, nav, footer, aside, header").Remove()

	text := extractArticleText(doc)
	if text == "" {
		return "", fmt.Errorf("no article content at %s", url)
	}
	return truncateRunes(text, s.contentLimit), nil
}

// ResolveImage returns the page's og:image (or twitter:image) URL, empty when
// none can be found.
func (s *Scraper) ResolveImage(ctx context.Context, url string) string {
	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		return ""
	}
	return previewImage(doc)
}

func previewImage(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	if content, ok := doc.Find(`meta[name="twitter:image"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	return ""
}

// articleSelectors are tried in order; the generic ones mirror how most news
// CMSes mark up their body copy.
var articleSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"p",
}

func extractArticleText(doc *goquery.Document) string {
	var paragraphs []string

	for _, selector := range articleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > 20 && !isJunkLine(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	if len(paragraphs) == 0 {
		// Last resort: whole-page text, whitespace collapsed.
		return collapseWhitespace(doc.Find("body").Text())
	}

	return collapseWhitespace(strings.Join(paragraphs, " "))
}

var junkIndicators = []string{
	"cookie", "gdpr", "subscribe", "newsletter", "sign in", "log in",
	"advertisement", "read more", "follow us", "share this",
}

func isJunkLine(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
