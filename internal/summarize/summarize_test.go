package summarize

import (
	"strings"
	"testing"
)

func TestEchoFillsBothLanguageSlots(t *testing.T) {
	r := Echo("Some title", "Some content about things.")

	if r.Title != "Some title" || r.TitleEN != "Some title" {
		t.Fatalf("titles = %q / %q, want echo in both", r.Title, r.TitleEN)
	}
	if r.Summary != r.SummaryEN {
		t.Fatalf("short summaries differ: %q vs %q", r.Summary, r.SummaryEN)
	}
	if r.LongSummary != "Some content about things." {
		t.Fatalf("long summary = %q", r.LongSummary)
	}
}

func TestEchoTruncatesShortSummary(t *testing.T) {
	content := strings.Repeat("é", 300)
	r := Echo("t", content)

	if got := len([]rune(r.Summary)); got != 200 {
		t.Fatalf("summary length = %d runes, want 200", got)
	}
	if r.LongSummary != content {
		t.Fatalf("long summary must keep full content")
	}
}

func TestCleanLeaksRemovesBracketedInstructions(t *testing.T) {
	in := "[Contexte: 1-2 phrases] OpenAI a annoncé un nouveau modèle.\n\n[Conclusion: implications] La suite au prochain épisode."
	out := CleanLeaks(in)

	if strings.Contains(out, "[Contexte") || strings.Contains(out, "[Conclusion") {
		t.Errorf("leaked instructions survived: %q", out)
	}
	if !strings.Contains(out, "OpenAI a annoncé") {
		t.Errorf("real content lost: %q", out)
	}
}

func TestCleanLeaksRemovesFullBracketLines(t *testing.T) {
	in := "[Key fact 1]\nThe company raised money.\n[quelques phrases qui expliquent le contexte]\nMore reporting."
	out := CleanLeaks(in)

	if strings.Contains(out, "[") {
		t.Errorf("bracketed lines survived: %q", out)
	}
	if !strings.Contains(out, "The company raised money.") || !strings.Contains(out, "More reporting.") {
		t.Errorf("content lines lost: %q", out)
	}
}

func TestCleanLeaksCollapsesNewlineRuns(t *testing.T) {
	out := CleanLeaks("a\n\n\n\n\nb")
	if out != "a\n\nb" {
		t.Fatalf("CleanLeaks = %q, want double newline at most", out)
	}
}

func TestCleanLeaksEmptyInput(t *testing.T) {
	if got := CleanLeaks(""); got != "" {
		t.Fatalf("CleanLeaks(\"\") = %q", got)
	}
}

func TestParseSummaryResponseStrict(t *testing.T) {
	raw := `{"title": "Titre", "title_en": "Title", "summary": "Résumé", "summary_en": "Summary",
		"long_summary": "Long FR", "long_summary_en": "Long EN"}`

	r, err := parseSummaryResponse(raw, "fallback title", "fallback content")
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if r.Title != "Titre" || r.TitleEN != "Title" || r.LongSummaryEN != "Long EN" {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestParseSummaryResponseWithCodeFences(t *testing.T) {
	raw := "```json\n{\"title\": \"Titre\", \"title_en\": \"Title\"}\n```"

	r, err := parseSummaryResponse(raw, "fallback title", "fallback content")
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if r.Title != "Titre" {
		t.Fatalf("Title = %q", r.Title)
	}
	// Missing fields come from the echo fallback.
	if r.Summary == "" || r.LongSummaryEN != "fallback content" {
		t.Fatalf("missing fields not backfilled: %+v", r)
	}
}

func TestParseSummaryResponseScrubsLeaks(t *testing.T) {
	raw := `{"title": "[Contexte: blah] Vrai titre", "title_en": "Real title"}`

	r, err := parseSummaryResponse(raw, "t", "c")
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if r.Title != "Vrai titre" {
		t.Fatalf("Title = %q, want scrubbed", r.Title)
	}
}

func TestParseSummaryResponseRejectsProse(t *testing.T) {
	if _, err := parseSummaryResponse("Here is your summary: ...", "t", "c"); err == nil {
		t.Fatalf("prose should not parse")
	}
}

func TestSanitizeContentCollapsesWhitespace(t *testing.T) {
	got := sanitizeContent("a\r\n  b\t\tc")
	if got != "a b c" {
		t.Fatalf("sanitizeContent = %q", got)
	}
}

func TestSanitizeContentCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 3000)
	got := sanitizeContent(long)
	if len([]rune(got)) > maxContentRunes {
		t.Fatalf("content not capped: %d runes", len([]rune(got)))
	}
}
