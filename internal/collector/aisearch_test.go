package collector

import "testing"

func TestParseAISearchResultsPlainJSON(t *testing.T) {
	text := `[{"title": "Gemini update", "url": "https://a.com/1", "summary": "s", "source": "Wired"}]`

	articles, err := parseAISearchResults(text)
	if err != nil {
		t.Fatalf("parseAISearchResults: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("len = %d, want 1", len(articles))
	}
	if articles[0].Source != "Wired" || articles[0].Title != "Gemini update" {
		t.Fatalf("unexpected article: %+v", articles[0])
	}
}

func TestParseAISearchResultsStripsCodeFences(t *testing.T) {
	text := "```json\n[{\"title\": \"T\", \"url\": \"https://a.com/1\", \"summary\": \"s\", \"source\": \"X\"}]\n```"

	articles, err := parseAISearchResults(text)
	if err != nil {
		t.Fatalf("parseAISearchResults: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("len = %d, want 1", len(articles))
	}
}

func TestParseAISearchResultsDerivesSourceFromURL(t *testing.T) {
	text := `[{"title": "T", "url": "https://www.theverge.com/x", "summary": "s"}]`

	articles, err := parseAISearchResults(text)
	if err != nil {
		t.Fatalf("parseAISearchResults: %v", err)
	}
	if articles[0].Source != "Theverge" {
		t.Fatalf("Source = %q, want Theverge", articles[0].Source)
	}
}

func TestParseAISearchResultsDropsIncompleteEntries(t *testing.T) {
	text := `[{"title": "", "url": "https://a.com/1"}, {"title": "T", "url": ""}, {"title": "Ok", "url": "https://a.com/2"}]`

	articles, err := parseAISearchResults(text)
	if err != nil {
		t.Fatalf("parseAISearchResults: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Ok" {
		t.Fatalf("articles = %+v, want only the complete entry", articles)
	}
}

func TestParseAISearchResultsRejectsProse(t *testing.T) {
	if _, err := parseAISearchResults("Sorry, I cannot browse the web."); err == nil {
		t.Fatalf("prose response should fail to parse")
	}
}
