package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRelevant(t *testing.T) {
	t.Parallel()

	keywords := DefaultKeywords()

	tests := []struct {
		question string
		want     bool
	}{
		{"What is fentanyl?", true},
		{"What is heroin?", true},
		{"How does NALOXONE work?", true},
		{"Tell me about the Opioid Crisis", true},
		{"Where can I find rehabilitation centers?", true}, // substring match
		{"What is the weather today?", false},
		{"", false},
		{"opioid", false}, // only "opioids" and "opioid crisis" are keywords
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRelevant(tt.question, keywords))
		})
	}
}

func TestIsRelevant_CaseInsensitive(t *testing.T) {
	t.Parallel()

	questions := []string{
		"What is fentanyl?",
		"what is the weather today?",
		"Overdose signs",
		"painKILLERS and narcotics",
		"random words",
	}

	for _, q := range questions {
		assert.Equal(t, IsRelevant(q, DefaultKeywords()), IsRelevant(strings.ToUpper(q), DefaultKeywords()), q)
	}
}

func TestIsRelevant_EveryKeywordMatchesItself(t *testing.T) {
	t.Parallel()

	for _, k := range DefaultKeywords() {
		assert.True(t, IsRelevant(k, DefaultKeywords()), k)
	}
}

func TestIsRelevant_ExplicitKeywords(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRelevant("Is Suboxone safe?", []string{"SUBOXONE"}))
	assert.False(t, IsRelevant("What is fentanyl?", []string{"suboxone"}))
	assert.False(t, IsRelevant("anything", nil))
	assert.False(t, IsRelevant("anything", []string{""}))
}

func TestDefaultKeywords_ReturnsCopy(t *testing.T) {
	t.Parallel()

	k := DefaultKeywords()
	k[0] = "weather"

	assert.Equal(t, "opioids", DefaultKeywords()[0])
}
