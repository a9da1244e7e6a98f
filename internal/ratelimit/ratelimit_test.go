package ratelimit

import "testing"

func TestBudgetEnforcesProviderLimit(t *testing.T) {
	b := NewBudget(2, 0, 0)

	for i := 0; i < 2; i++ {
		if !b.CanUseGemini() {
			t.Fatalf("request %d should be allowed", i+1)
		}
		b.RecordGemini()
	}
	if b.CanUseGemini() {
		t.Fatalf("third gemini request should be denied")
	}
	// OpenAI slot is unlimited here and must not be affected.
	if !b.CanUseOpenAI() {
		t.Fatalf("openai request should still be allowed")
	}
}

func TestBudgetEnforcesTotalLimit(t *testing.T) {
	b := NewBudget(0, 0, 3)

	b.RecordGemini()
	b.RecordOpenAI()
	b.RecordGemini()

	if b.CanUseGemini() || b.CanUseOpenAI() {
		t.Fatalf("total budget of 3 should deny further requests")
	}
	if b.Used() != 3 {
		t.Fatalf("Used = %d, want 3", b.Used())
	}
}

func TestBudgetZeroMeansUnlimited(t *testing.T) {
	b := NewBudget(0, 0, 0)
	for i := 0; i < 100; i++ {
		b.RecordGemini()
	}
	if !b.CanUseGemini() {
		t.Fatalf("zero limits should never deny")
	}
}
