package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRiskBands(t *testing.T) {
	tests := []struct {
		score int
		want  RiskTier
	}{
		{4, TierConservative},
		{7, TierConservative},
		{8, TierModerate},
		{11, TierModerate},
		{12, TierAggressive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRisk(tt.score), "score %d", tt.score)
	}
}

func TestClassifyRiskOutOfRange(t *testing.T) {
	// Scores are caller-constrained to [4,12] but classification must be
	// total over integers.
	assert.Equal(t, TierConservative, ClassifyRisk(0))
	assert.Equal(t, TierConservative, ClassifyRisk(-10))
	assert.Equal(t, TierAggressive, ClassifyRisk(100))
}

func TestRiskQuestionsShape(t *testing.T) {
	assert.Len(t, RiskQuestions, 4)
	for i, q := range RiskQuestions {
		assert.NotEmpty(t, q.Text, "question %d", i)
		for j, opt := range q.Options {
			assert.NotEmpty(t, opt, "question %d option %d", i, j)
		}
	}
}

func TestRiskTierDisplay(t *testing.T) {
	assert.Contains(t, TierConservative.Display(), "Conservative")
	assert.Contains(t, TierModerate.Display(), "Moderate")
	assert.Contains(t, TierAggressive.Display(), "Aggressive")
}
