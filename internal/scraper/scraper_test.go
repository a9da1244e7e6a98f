package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestScraper() *Scraper {
	return New(5*time.Second, 1, 0, 100)
}

func TestResolveImagePrefersOGImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:image" content="https://cdn.example.com/og.png">
			<meta name="twitter:image" content="https://cdn.example.com/tw.png">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	got := newTestScraper().ResolveImage(context.Background(), srv.URL)
	if got != "https://cdn.example.com/og.png" {
		t.Fatalf("ResolveImage = %q, want og:image", got)
	}
}

func TestResolveImageFallsBackToTwitterImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta name="twitter:image" content="https://cdn.example.com/tw.png">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	got := newTestScraper().ResolveImage(context.Background(), srv.URL)
	if got != "https://cdn.example.com/tw.png" {
		t.Fatalf("ResolveImage = %q, want twitter:image", got)
	}
}

func TestResolveImageEmptyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if got := newTestScraper().ResolveImage(context.Background(), srv.URL); got != "" {
		t.Fatalf("ResolveImage = %q, want empty on HTTP failure", got)
	}
}

func TestExtractTextFiltersJunkAndTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article>
			<p>This paragraph carries the actual reporting of the story in question.</p>
			<p>Accept our cookie policy to continue reading this site.</p>
			<p>A second real paragraph with more details about the announcement.</p>
			<p>A third real paragraph that rounds out the article with background.</p>
		</article></body></html>`))
	}))
	defer srv.Close()

	got, err := newTestScraper().ExtractText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if strings.Contains(strings.ToLower(got), "cookie") {
		t.Errorf("junk line survived extraction: %q", got)
	}
	if !strings.Contains(got, "actual reporting") {
		t.Errorf("real content missing: %q", got)
	}
	if len([]rune(got)) > 100 {
		t.Errorf("content not truncated to limit: %d runes", len([]rune(got)))
	}
}

func TestTruncateRunesKeepsShortStrings(t *testing.T) {
	if got := truncateRunes("déjà vu", 100); got != "déjà vu" {
		t.Fatalf("truncateRunes = %q", got)
	}
	if got := truncateRunes("ééééé", 3); got != "ééé" {
		t.Fatalf("truncateRunes should cut on rune boundary, got %q", got)
	}
}
