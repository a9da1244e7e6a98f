package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/ohvali/ainews/internal/logger"
	"github.com/ohvali/ainews/internal/ratelimit"
)

const aiSearchPrompt = `Find the top 5 most important AI news stories from TODAY.
For each, provide:
- title: The headline
- url: The source URL
- summary: 2 sentence summary
- source: The publication name

Focus on: OpenAI, Google Gemini, Anthropic Claude, GPT, Codex, major AI breakthroughs, AI safety news.

Return ONLY a JSON array, no other text:
[{"title": "...", "url": "...", "summary": "...", "source": "..."}]`

type aiSearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// AISearchFetcher asks a language model for the day's top stories. It is the
// fallback origin when regular search comes up short: Gemini first, then GPT.
// Both keys optional; whatever is configured gets tried.
type AISearchFetcher struct {
	geminiAPIKey string
	openaiAPIKey string
	budget       *ratelimit.Budget
}

func NewAISearchFetcher(geminiAPIKey, openaiAPIKey string, budget *ratelimit.Budget) *AISearchFetcher {
	return &AISearchFetcher{
		geminiAPIKey: geminiAPIKey,
		openaiAPIKey: openaiAPIKey,
		budget:       budget,
	}
}

func (f *AISearchFetcher) Name() string { return "ai_search" }

func (f *AISearchFetcher) Fetch() ([]RawArticle, error) {
	ctx := context.Background()

	if f.geminiAPIKey != "" && f.budget.CanUseGemini() {
		f.budget.RecordGemini()
		articles, err := f.searchGemini(ctx)
		if err == nil {
			logger.Info("ai search via gemini", "found", len(articles))
			return articles, nil
		}
		logger.Warn("gemini search failed", "error", err)
	}

	if f.openaiAPIKey != "" && f.budget.CanUseOpenAI() {
		f.budget.RecordOpenAI()
		articles, err := f.searchGPT(ctx)
		if err == nil {
			logger.Info("ai search via gpt", "found", len(articles))
			return articles, nil
		}
		logger.Warn("gpt search failed", "error", err)
	}

	return nil, nil
}

func (f *AISearchFetcher) searchGemini(ctx context.Context) ([]RawArticle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(f.geminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(aiSearchPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini search: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini search: empty response")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseAISearchResults(text)
}

func (f *AISearchFetcher) searchGPT(ctx context.Context) ([]RawArticle, error) {
	client := openai.NewClient(f.openaiAPIKey)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4o,
		Temperature: 0.1,
		MaxTokens:   1500,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: aiSearchPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpt search: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gpt search: empty response")
	}

	return parseAISearchResults(resp.Choices[0].Message.Content)
}

// parseAISearchResults decodes the model's JSON array, tolerating markdown
// code fences around it.
func parseAISearchResults(text string) ([]RawArticle, error) {
	text = stripCodeFences(text)

	var results []aiSearchResult
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("parse ai search results: %w", err)
	}

	articles := make([]RawArticle, 0, len(results))
	for _, r := range results {
		if r.URL == "" || r.Title == "" {
			continue
		}
		source := r.Source
		if source == "" {
			source = SourceNameFromURL(r.URL)
		}
		articles = append(articles, RawArticle{
			Title:  r.Title,
			Text:   r.Summary,
			URL:    r.URL,
			Source: source,
		})
	}
	return articles, nil
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
