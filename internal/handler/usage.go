// Package handler provides the HTTP handlers for the agent gateway.
package handler

import (
	"sync"
	"unicode"
)

// TokensPerWord is the approximation ratio (1 word ≈ 1.3 tokens).
const TokensPerWord = 1.3

// usageTracker accumulates estimated token usage across requests.
type usageTracker struct {
	mu           sync.RWMutex
	promptTokens int64
	replyTokens  int64
}

var globalUsage = &usageTracker{}

// EstimateTokens estimates the number of tokens in a text string.
// Uses a lightweight word-count approximation: 1 word ≈ 1.3 tokens.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

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

	tokens := int(float64(wordCount) * TokensPerWord)
	if tokens == 0 && wordCount > 0 {
		tokens = 1
	}

	return tokens
}

// RecordUsage adds a request's estimated token counts to the running totals.
func RecordUsage(promptTokens, replyTokens int) {
	globalUsage.mu.Lock()
	defer globalUsage.mu.Unlock()
	globalUsage.promptTokens += int64(promptTokens)
	globalUsage.replyTokens += int64(replyTokens)
}

// UsageTotals returns the accumulated token estimates.
func UsageTotals() (promptTokens, replyTokens int64) {
	globalUsage.mu.RLock()
	defer globalUsage.mu.RUnlock()
	return globalUsage.promptTokens, globalUsage.replyTokens
}

// ResetUsage clears the accumulated totals (useful for testing).
func ResetUsage() {
	globalUsage.mu.Lock()
	defer globalUsage.mu.Unlock()
	globalUsage.promptTokens = 0
	globalUsage.replyTokens = 0
}
