// Package app wires the collectors, summarizer, scraper and store into one
// aggregation run. A run never fails: every collaborator error is recovered
// locally and the store is always written.
package app

import (
	"context"
	"time"

	"github.com/ohvali/ainews/internal/collector"
	"github.com/ohvali/ainews/internal/config"
	"github.com/ohvali/ainews/internal/logger"
	"github.com/ohvali/ainews/internal/metrics"
	"github.com/ohvali/ainews/internal/news"
	"github.com/ohvali/ainews/internal/ratelimit"
	"github.com/ohvali/ainews/internal/retry"
	"github.com/ohvali/ainews/internal/scraper"
	"github.com/ohvali/ainews/internal/storage"
	"github.com/ohvali/ainews/internal/summarize"
)

// minSearchResults is the threshold under which the AI search fallback kicks
// in for the search origin.
const minSearchResults = 3

// defaultQueries mirror the original search setup; used when the sources file
// does not configure any.
var defaultQueries = []string{
	"AI artificial intelligence news today",
	"OpenAI Google Anthropic news",
	"AI video image generation news",
}

// Pipeline is one configured aggregation run: a set of collectors plus the
// summarizer and scraper capabilities, selected at construction time.
type Pipeline struct {
	cfg        *config.Config
	fetchers   []collector.Fetcher
	aiFallback collector.Fetcher
	summarizer summarize.Summarizer
	scraper    *scraper.Scraper
	now        func() time.Time
}

// New builds the pipeline from configuration: RSS feeds and search queries
// from the sources file, Brave search, the AI search fallback, the Gemini
// summarizer and the page scraper, all sharing one AI request budget.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	sources, err := collector.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return nil, err
	}
	queries := sources.Queries
	if len(queries) == 0 {
		queries = defaultQueries
	}

	budget := ratelimit.NewBudget(0, 0, cfg.MaxAIRequests)

	summarizer, err := summarize.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, budget)
	if err != nil {
		return nil, err
	}

	retryCfg := retry.Config{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}

	return &Pipeline{
		cfg: cfg,
		fetchers: []collector.Fetcher{
			collector.NewRSSFetcher(sources.Feeds, cfg.FeedEntryLimit, cfg.FeedMaxAge),
			collector.NewBraveFetcher(cfg.BraveAPIKey, queries, cfg.QueryDelay, cfg.MaxSearchArticles, cfg.RequestTimeout, retryCfg),
		},
		aiFallback: collector.NewAISearchFetcher(cfg.GeminiAPIKey, cfg.OpenAIAPIKey, budget),
		summarizer: summarizer,
		scraper:    scraper.New(cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay, cfg.ScrapeContentLimit),
		now:        time.Now,
	}, nil
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	if s, ok := p.summarizer.(*summarize.GeminiSummarizer); ok {
		s.Close()
	}
}

// Run executes one aggregation pass: load the store, collect candidates from
// every origin, summarize and categorize the new ones, merge, rescore hot
// news and persist. Only a store problem (strict mode) or an unwritable store
// file can make it return an error.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	store, err := storage.Load(p.cfg.NewsFilePath, p.cfg.StoreStrict)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	logger.Info("store loaded", "articles", store.Count(), "path", p.cfg.NewsFilePath)

	raw := p.collect()
	candidates := p.prepare(ctx, store, raw)

	added := news.Merge(store, candidates)
	metrics.Global.AddArticlesAdded(added)
	logger.Info("merge complete", "candidates", len(candidates), "added", added)

	store.HotNews = news.ScoreHot(store.AllArticles())
	store.LastUpdate = p.now().Format(news.LastUpdateFormat)

	if err := storage.Save(store, p.cfg.NewsFilePath); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	metrics.Global.SetLastRun()
	logger.Info("run complete", "total", store.Count(), "hot", len(store.HotNews), "took", time.Since(start).String())
	return nil
}

// collect runs every origin sequentially. Origin failures yield empty result
// sets; the search fallback runs when the search origin found too little.
func (p *Pipeline) collect() []collector.RawArticle {
	var all []collector.RawArticle

	searchCount := 0
	for _, f := range p.fetchers {
		items, err := f.Fetch()
		if err != nil {
			logger.Warn("collection failed", "source", f.Name(), "error", err)
			continue
		}
		logger.Info("collected", "source", f.Name(), "count", len(items))
		if f.Name() != "rss" {
			searchCount += len(items)
		}
		all = append(all, items...)
	}

	if searchCount < minSearchResults && p.aiFallback != nil {
		items, err := p.aiFallback.Fetch()
		if err != nil {
			logger.Warn("collection failed", "source", p.aiFallback.Name(), "error", err)
		} else if len(items) > 0 {
			logger.Info("collected", "source", p.aiFallback.Name(), "count", len(items))
			all = append(all, items...)
		}
	}

	metrics.Global.AddArticlesCollected(len(all))
	return all
}

// prepare turns raw candidates into categorized, summarized articles. URLs
// already in the store (or earlier in this batch) are skipped up front so no
// AI budget is burned on duplicates.
func (p *Pipeline) prepare(ctx context.Context, store *news.Store, raw []collector.RawArticle) []news.Article {
	seen := store.URLSet()
	date := p.now().Format(news.DateFormat)

	var candidates []news.Article
	for _, item := range raw {
		if item.URL == "" || item.Title == "" {
			continue
		}
		if _, dup := seen[item.URL]; dup {
			metrics.Global.IncrementDuplicatesSkipped()
			continue
		}
		seen[item.URL] = struct{}{}

		content := item.Text
		if p.scraper != nil {
			if full, err := p.scraper.ExtractText(ctx, item.URL); err == nil && len(full) > len(content) {
				content = full
			}
		}

		result, err := p.summarizer.Summarize(ctx, item.Title, content, item.URL)
		if err != nil || result == nil {
			// Summarizer implementations fall back internally; this is the
			// belt-and-braces path for custom ones that do not.
			result = summarize.Echo(item.Title, content)
		}

		image := ""
		if p.scraper != nil {
			image = p.scraper.ResolveImage(ctx, item.URL)
			if image != "" {
				metrics.Global.IncrementImagesResolved()
			}
		}

		category := news.Categorize(item.Title, item.Text)

		candidates = append(candidates, news.Article{
			Title:         result.Title,
			TitleEN:       result.TitleEN,
			Summary:       result.Summary,
			SummaryEN:     result.SummaryEN,
			LongSummary:   result.LongSummary,
			LongSummaryEN: result.LongSummaryEN,
			Image:         image,
			Source:        item.Source,
			URL:           item.URL,
			Date:          date,
			Category:      category,
		})

		logger.Debug("candidate prepared", "category", category, "source", item.Source, "title", item.Title)
	}

	return candidates
}
