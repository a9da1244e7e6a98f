// Package ratelimit bounds how many language-model calls a single run may
// make across providers.
package ratelimit

import (
	"sync"

	"github.com/ohvali/ainews/internal/logger"
)

// Budget tracks per-provider and total AI request counts for one run.
// A zero max means unlimited for that slot.
type Budget struct {
	mu          sync.Mutex
	geminiCount int
	openaiCount int
	totalCount  int
	maxGemini   int
	maxOpenAI   int
	maxTotal    int
}

// NewBudget creates a budget with the given limits.
func NewBudget(maxGemini, maxOpenAI, maxTotal int) *Budget {
	return &Budget{
		maxGemini: maxGemini,
		maxOpenAI: maxOpenAI,
		maxTotal:  maxTotal,
	}
}

// CanUseGemini reports whether another Gemini request fits the budget.
func (b *Budget) CanUseGemini() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxGemini > 0 && b.geminiCount >= b.maxGemini {
		logger.Warn("gemini request budget exhausted", "used", b.geminiCount, "max", b.maxGemini)
		return false
	}
	if b.maxTotal > 0 && b.totalCount >= b.maxTotal {
		logger.Warn("total AI request budget exhausted", "used", b.totalCount, "max", b.maxTotal)
		return false
	}
	return true
}

// CanUseOpenAI reports whether another OpenAI request fits the budget.
func (b *Budget) CanUseOpenAI() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxOpenAI > 0 && b.openaiCount >= b.maxOpenAI {
		logger.Warn("openai request budget exhausted", "used", b.openaiCount, "max", b.maxOpenAI)
		return false
	}
	if b.maxTotal > 0 && b.totalCount >= b.maxTotal {
		logger.Warn("total AI request budget exhausted", "used", b.totalCount, "max", b.maxTotal)
		return false
	}
	return true
}

// RecordGemini counts one Gemini request against the budget.
func (b *Budget) RecordGemini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.geminiCount++
	b.totalCount++
}

// RecordOpenAI counts one OpenAI request against the budget.
func (b *Budget) RecordOpenAI() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openaiCount++
	b.totalCount++
}

// Used returns the total number of AI requests recorded so far.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalCount
}
