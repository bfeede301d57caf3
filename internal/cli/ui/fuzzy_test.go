package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flutter", "flutter", 0},
		{"fluter", "flutter", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.want, LevenshteinDistance(tt.s1, tt.s2))
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"flutter", "flutter-web", "dart", "go"}

	assert.Equal(t, []string{"flutter"}, FindSimilar("fluter", candidates))
	assert.Equal(t, []string{"flutter"}, FindSimilar("FLUTTER", candidates))
	assert.Empty(t, FindSimilar("kotlin-multiplatform", candidates))
}

func TestFindSimilarLimitsSuggestions(t *testing.T) {
	got := FindSimilar("ab", []string{"aa", "ab", "ac", "ad", "ae"})
	assert.Len(t, got, DefaultMaxSuggestions)
	assert.Equal(t, "ab", got[0])
}
