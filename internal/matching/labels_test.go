// internal/matching/labels_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "ideal"},
		{90, "ideal"},
		{89, "excellent"},
		{80, "excellent"},
		{70, "good"},
		{60, "suitable"},
		{40, "consider"},
		{39, "not_recommended"},
		{0, "not_recommended"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.score), "score %d", tt.score)
	}
}

func TestTopAndExcludedSplit(t *testing.T) {
	results := []VendorMatchResult{
		{VendorID: "a", MatchScore: 80},
		{VendorID: "b", MatchScore: 50},
		{VendorID: "c", MatchScore: 49},
		{VendorID: "d", Excluded: true},
	}

	top := TopRecommendations(results)
	assert.Len(t, top, 2)
	assert.Equal(t, "a", top[0].VendorID)
	assert.Equal(t, "b", top[1].VendorID)

	excluded := ExcludedResults(results)
	assert.Len(t, excluded, 1)
	assert.Equal(t, "d", excluded[0].VendorID)
}
