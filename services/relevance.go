package services

import (
	"slices"
	"strings"
)

var defaultKeywords = []string{
	"opioids", "addiction", "overdose", "withdrawal", "fentanyl", "heroin",
	"painkillers", "narcotics", "opioid crisis", "naloxone", "rehab",
}

// DefaultKeywords returns a copy of the built-in topic list.
func DefaultKeywords() []string {
	return slices.Clone(defaultKeywords)
}

// IsRelevant reports whether the question mentions any keyword, ignoring case.
// Matching is plain substring containment: "rehabilitation" matches "rehab".
func IsRelevant(question string, keywords []string) bool {
	q := strings.ToLower(question)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(q, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
