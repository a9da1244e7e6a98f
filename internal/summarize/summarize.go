// Package summarize turns raw article text into bilingual (FR/EN) titles and
// summaries. The contract is forgiving: whatever fails, the caller always gets
// usable text back, at worst the original title and content echoed into both
// language slots.
package summarize

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Result is the bilingual output for one article.
type Result struct {
	Title         string `json:"title"`
	TitleEN       string `json:"title_en"`
	Summary       string `json:"summary"`
	SummaryEN     string `json:"summary_en"`
	LongSummary   string `json:"long_summary"`
	LongSummaryEN string `json:"long_summary_en"`
}

// Summarizer produces a bilingual summary for one article. Implementations
// must not fail the pipeline: on any error they return the Echo fallback and
// a nil error, or let the caller do so.
type Summarizer interface {
	Summarize(ctx context.Context, title, content, url string) (*Result, error)
}

const shortSummaryLimit = 200

// Echo is the no-AI fallback: the original title and content fill both
// language slots, the short summaries truncated.
func Echo(title, content string) *Result {
	short := truncate(content, shortSummaryLimit)
	return &Result{
		Title:         title,
		TitleEN:       title,
		Summary:       short,
		SummaryEN:     short,
		LongSummary:   content,
		LongSummaryEN: content,
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// leakPatterns match prompt-instruction fragments that language models
// sometimes copy into their output instead of replacing.
var leakPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[Contexte:.*?\]`),
	regexp.MustCompile(`(?i)\[Context:.*?\]`),
	regexp.MustCompile(`(?i)\[Conclusion:.*?\]`),
	regexp.MustCompile(`(?i)\[Fait important \d+\]`),
	regexp.MustCompile(`(?i)\[Key fact \d+\]`),
	regexp.MustCompile(`(?i)\[[^\]]*?phrases qui expliquent[^\]]*?\]`),
	regexp.MustCompile(`(?i)\[[^\]]*?sentences explaining[^\]]*?\]`),
	regexp.MustCompile(`(?i)\[[^\]]*?implications[^\]]*?\]`),
	regexp.MustCompile(`(?i)\[[^\]]*?what this changes[^\]]*?\]`),
	regexp.MustCompile(`(?m)^\[[^\]]*\]\s*$`),
}

var multiNewlineRe = regexp.MustCompile(`\n{3,}`)

// CleanLeaks strips leaked prompt instructions from generated text.
func CleanLeaks(text string) string {
	if text == "" {
		return text
	}
	for _, re := range leakPatterns {
		text = re.ReplaceAllString(text, "")
	}
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Clean scrubs every field of a result in place and returns it.
func (r *Result) Clean() *Result {
	r.Title = CleanLeaks(r.Title)
	r.TitleEN = CleanLeaks(r.TitleEN)
	r.Summary = CleanLeaks(r.Summary)
	r.SummaryEN = CleanLeaks(r.SummaryEN)
	r.LongSummary = CleanLeaks(r.LongSummary)
	r.LongSummaryEN = CleanLeaks(r.LongSummaryEN)
	return r
}

// fillMissing backfills any empty field from the echo fallback so a partial
// model response still yields a complete result.
func (r *Result) fillMissing(title, content string) *Result {
	echo := Echo(title, content)
	if r.Title == "" {
		r.Title = echo.Title
	}
	if r.TitleEN == "" {
		r.TitleEN = echo.TitleEN
	}
	if r.Summary == "" {
		r.Summary = echo.Summary
	}
	if r.SummaryEN == "" {
		r.SummaryEN = echo.SummaryEN
	}
	if r.LongSummary == "" {
		r.LongSummary = echo.LongSummary
	}
	if r.LongSummaryEN == "" {
		r.LongSummaryEN = echo.LongSummaryEN
	}
	return r
}
