package news

import "strings"

// categoryKeywords routes an article into its bucket. The order of
// categoryPriority is load-bearing: classification is first-match, so an item
// mentioning both "video" and "gpt" always lands in video because video is
// checked first.
var categoryKeywords = map[Category][]string{
	CategoryVideo: {"video", "sora", "runway", "pika", "kling", "seedance", "gen-3", "gen-4", "veo", "hailuo", "luma"},
	CategoryImage: {"image", "dall-e", "midjourney", "stable diffusion", "flux", "ideogram", "imagen", "photo"},
	CategoryLLM:   {"gpt", "claude", "gemini", "llama", "mistral", "llm", "chatbot", "language model", "anthropic", "openai", "chatgpt"},
	CategoryAudio: {"audio", "music", "suno", "udio", "elevenlabs", "voice", "tts", "speech", "sound"},
}

var categoryPriority = []Category{CategoryVideo, CategoryImage, CategoryLLM, CategoryAudio}

// Categorize assigns a category from the article's title and summary text.
// Pure function: case-insensitive substring match, first keyword hit wins,
// general when nothing matches.
func Categorize(title, summary string) Category {
	text := strings.ToLower(title + " " + summary)

	for _, cat := range categoryPriority {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(text, kw) {
				return cat
			}
		}
	}

	return CategoryGeneral
}
