package news

import (
	"sort"
	"strings"
)

// priorityKeywords are the model/company names that are actually moving right
// now, weighted by how hot they are.
var priorityKeywords = map[string]int{
	"gemini":    20,
	"gpt":       15,
	"codex":     15,
	"openai":    12,
	"anthropic": 12,
	"claude":    12,
	"deepseek":  10,
	"agi":       10,
}

// breakingKeywords are event words that separate a concrete story from
// generic coverage.
var breakingKeywords = map[string]int{
	"100,000":   25,
	"100000":    25,
	"hack":      20,
	"attack":    20,
	"attackers": 20,
	"prompted":  15,
	"clone":     15,
	"quit":      15,
	"quits":     15,
	"exit":      15,
	"leaves":    12,
	"warns":     12,
	"billion":   10,
	"million":   8,
	"launches":  8,
	"viral":     8,
	"safety":    8,
}

// hotBonus rewards articles that name a specific company or model AND describe
// a concrete event. Those are the real stories; the bonus pushes them above
// articles that merely mention a hot name.
const hotBonus = 20

// hotNewsLimit is the size of the hotNews list.
const hotNewsLimit = 3

// HotScore computes the keyword-weighted score of a single article.
// A keyword found in the title counts weight*2; found only in the body it
// counts weight once, never both.
func HotScore(a Article) int {
	titleText := strings.ToLower(a.TitleEN + " " + a.Title)
	fullText := titleText + " " +
		strings.ToLower(a.SummaryEN+" "+a.Summary) + " " +
		strings.ToLower(a.LongSummaryEN+" "+a.LongSummary)

	score := 0
	priorityHit := false
	breakingHit := false

	for kw, points := range priorityKeywords {
		switch {
		case strings.Contains(titleText, kw):
			score += points * 2
			priorityHit = true
		case strings.Contains(fullText, kw):
			score += points
			priorityHit = true
		}
	}

	for kw, points := range breakingKeywords {
		switch {
		case strings.Contains(titleText, kw):
			score += points * 2
			breakingHit = true
		case strings.Contains(fullText, kw):
			score += points
			breakingHit = true
		}
	}

	if priorityHit && breakingHit {
		score += hotBonus
	}

	return score
}

// ScoreHot ranks all merged articles and returns the top three as trimmed
// hot-news entries, best first. The sort is stable, so equal scores keep the
// input order. Low or zero scores are still returned: the result always has
// min(3, len(articles)) entries.
func ScoreHot(articles []Article) []HotEntry {
	if len(articles) == 0 {
		return []HotEntry{}
	}

	scored := make([]struct {
		article Article
		score   int
	}, len(articles))
	for i, a := range articles {
		scored[i].article = a
		scored[i].score = HotScore(a)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := hotNewsLimit
	if len(scored) < limit {
		limit = len(scored)
	}

	hot := make([]HotEntry, 0, limit)
	for _, s := range scored[:limit] {
		hot = append(hot, HotEntry{
			Title:   s.article.Title,
			TitleEN: s.article.TitleEN,
			Source:  s.article.Source,
			URL:     s.article.URL,
			Date:    s.article.Date,
		})
	}
	return hot
}
