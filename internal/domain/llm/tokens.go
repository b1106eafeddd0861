package llm

import "unicode/utf8"

// TokenEstimateRatio estimates ~4 characters per token.
const TokenEstimateRatio = 4

// EstimateTokens approximates the token count of text as characters / 4, rounded down.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / TokenEstimateRatio
}

