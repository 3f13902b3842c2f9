package ai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates how many tokens a prompt will cost.
// A nil counter, or one built without an encoding, uses the chars/4 rule.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTokenCounter loads the named tiktoken encoding (e.g. "cl100k_base").
// An empty name returns the estimating counter.
func NewTokenCounter(encodingName string) (*TokenCounter, error) {
	if encodingName == "" {
		return &TokenCounter{name: "estimate"}, nil
	}

	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TokenCounter{encoding: enc, name: encodingName}, nil
}

// Name reports the encoding in use.
func (tc *TokenCounter) Name() string {
	if tc == nil || tc.name == "" {
		return "estimate"
	}
	return tc.name
}

// Count returns the token count of text.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if tc == nil || tc.encoding == nil {
		return estimateTokens(text)
	}
	return len(tc.encoding.Encode(text, nil, nil))
}

// Rough estimation: 1 token ≈ 4 characters
func estimateTokens(text string) int {
	estimated := len(text) / 4
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}
