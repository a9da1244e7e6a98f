package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ohvali/ainews/internal/logger"
	"github.com/ohvali/ainews/internal/metrics"
	"github.com/ohvali/ainews/internal/ratelimit"
)

const geminiModel = "gemini-2.0-flash"

// maxContentRunes caps the article text fed into the prompt.
const maxContentRunes = 6000

const summaryPromptTemplate = `Tu es un journaliste tech expert. Génère un article structuré en FR et EN.

TITRE ORIGINAL: %s
CONTENU: %s

FORMAT DE RÉPONSE - JSON strict:
{
  "title": "Titre accrocheur traduit en français",
  "title_en": "Original or improved English title",
  "summary": "Résumé FR percutant en 1-2 phrases (max 150 caractères)",
  "summary_en": "Punchy EN summary in 1-2 sentences (max 150 chars)",
  "long_summary": "Contexte en 1-2 phrases.\n\nPoints clés :\n• Premier point important\n• Deuxième point\n• Troisième point\n\nConclusion sur les implications.",
  "long_summary_en": "Context in 1-2 sentences.\n\nKey points:\n• First key point\n• Second point\n• Third point\n\nConclusion on implications."
}

RÈGLES STRICTES:
- NE PAS inclure de texte entre crochets comme [Contexte:] ou [Conclusion:]
- Écrire directement le contenu, pas des instructions
- Ne pas traduire les noms de marques et d'organisations
- Utiliser • pour les bullet points
- JSON valide uniquement, pas de markdown`

// GeminiSummarizer generates bilingual summaries with Gemini. Without an API
// key, or once the request budget runs out, it degrades to the Echo fallback.
type GeminiSummarizer struct {
	client *genai.Client
	budget *ratelimit.Budget
}

// NewGeminiSummarizer creates the summarizer. An empty apiKey returns a
// summarizer that only echoes; that is not an error.
func NewGeminiSummarizer(ctx context.Context, apiKey string, budget *ratelimit.Budget) (*GeminiSummarizer, error) {
	if apiKey == "" {
		logger.Info("gemini summarizer disabled, no API key")
		return &GeminiSummarizer{budget: budget}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, budget: budget}, nil
}

// Close releases the underlying client.
func (s *GeminiSummarizer) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Summarize produces the bilingual result for one article. Every failure path
// ends in the Echo fallback with a nil error; the pipeline never stops here.
func (s *GeminiSummarizer) Summarize(ctx context.Context, title, content, url string) (*Result, error) {
	if s.client == nil || !s.budget.CanUseGemini() {
		metrics.Global.IncrementSummaryFallbacks()
		return Echo(title, content), nil
	}
	s.budget.RecordGemini()

	content = sanitizeContent(content)

	model := s.client.GenerativeModel(geminiModel)
	prompt := fmt.Sprintf(summaryPromptTemplate, title, content)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Warn("gemini summary failed", "url", url, "error", err)
		metrics.Global.IncrementSummaryFallbacks()
		return Echo(title, content), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		logger.Warn("gemini summary empty", "url", url)
		metrics.Global.IncrementSummaryFallbacks()
		return Echo(title, content), nil
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	result, err := parseSummaryResponse(text, title, content)
	if err != nil {
		logger.Warn("gemini summary unparseable", "url", url, "error", err)
		metrics.Global.IncrementSummaryFallbacks()
		return Echo(title, content), nil
	}

	metrics.Global.IncrementSummariesGenerated()
	return result, nil
}

// parseSummaryResponse decodes the model's JSON, tolerating markdown fences,
// scrubs leaked prompt fragments and backfills missing fields.
func parseSummaryResponse(text, title, content string) (*Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("decode summary JSON: %w", err)
	}

	return result.Clean().fillMissing(title, content), nil
}

// sanitizeContent collapses whitespace and cuts over-long input on a rune
// boundary, ideally at a sentence end.
func sanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")

	if utf8.RuneCountInString(content) <= maxContentRunes {
		return content
	}

	runes := []rune(content)
	trimmed := string(runes[:maxContentRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}
