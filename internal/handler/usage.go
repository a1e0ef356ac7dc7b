// Package handler provides HTTP handlers for the sampling service.
package handler

import (
	"sync"
	"unicode"
)

// TokensPerWord is the approximation ratio (1 word ≈ 1.3 tokens).
const TokensPerWord = 1.3

// UsageTracker accumulates estimated token usage across requests.
// The remote provider reports exact usage only on success, so a word-count
// estimate is used uniformly for both prompts and completions.
type UsageTracker struct {
	mu               sync.RWMutex
	promptTokens     int64
	completionTokens int64
	samples          int64
}

// UsageMetrics holds the estimates for a single request/response pair.
type UsageMetrics struct {
	PromptTokens     int
	CompletionTokens int
}

// NewUsageTracker creates an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{}
}

// Record estimates usage for one sample and adds it to the running totals.
func (u *UsageTracker) Record(prompt, completion string) UsageMetrics {
	m := UsageMetrics{
		PromptTokens:     EstimateTokens(prompt),
		CompletionTokens: EstimateTokens(completion),
	}

	u.mu.Lock()
	u.promptTokens += int64(m.PromptTokens)
	u.completionTokens += int64(m.CompletionTokens)
	u.samples++
	u.mu.Unlock()

	return m
}

// Totals returns the cumulative estimates and the number of samples recorded.
func (u *UsageTracker) Totals() (promptTokens, completionTokens, samples int64) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.promptTokens, u.completionTokens, u.samples
}

// Reset clears the totals (useful for testing).
func (u *UsageTracker) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.promptTokens = 0
	u.completionTokens = 0
	u.samples = 0
}

// EstimateTokens estimates the number of tokens in a text string.
// Uses a lightweight approximation: 1 word ≈ 1.3 tokens.
// This avoids external dependencies while providing reasonable accuracy.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	// Count words by splitting on whitespace and punctuation
	wordCount := 0
	inWord := false

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				wordCount++
				inWord = true
			}
		} else {
			inWord = false
		}
	}

	// Apply the 1.3 multiplier and round up
	tokens := int(float64(wordCount) * TokensPerWord)
	if tokens == 0 && wordCount > 0 {
		tokens = 1 // Minimum 1 token if there's any text
	}

	return tokens
}
