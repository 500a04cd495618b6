package moments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJargonDensity(t *testing.T) {
	tests := []struct {
		name  string
		quote string
		want  float64
	}{
		{"no jargon", "We will build more flats next year.", 0},
		{"one hit", "We need to recalibrate our approach.", 1.0 / 3},
		{"two hits", "A holistic framework is required.", 2.0 / 3},
		{"saturates at three", "Our holistic framework will leverage stakeholder synergy.", 1.0},
		{"case insensitive", "We must RECALIBRATE this FRAMEWORK", 2.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, jargonDensity(tt.quote), 0.001)
		})
	}
}

func TestContradiction(t *testing.T) {
	tests := []struct {
		name   string
		quote  string
		aiFlag bool
		want   bool
	}{
		{"ai flag wins outright", "Nothing unusual here.", true, true},
		{"denial with hedge", "We will not rule it out, we are still considering the proposal.", false, true},
		{"denial without hedge", "We will never allow this.", false, false},
		{"hedge without denial", "We are reviewing the matter.", false, false},
		{"neither", "Thank you, Mr Speaker.", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contradiction(tt.quote, tt.aiFlag))
		})
	}
}

func TestQuotability(t *testing.T) {
	tests := []struct {
		words int
		want  float64
	}{
		{5, 0.3},
		{10, 0.3},
		{12, 0.3 + 0.7*2.0/5.0},
		{15, 1.0},
		{30, 1.0},
		{40, 1.0},
		{50, 0.7},
		{60, 0.7},
		{100, 0.4},
	}
	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.InDelta(t, tt.want, quotability(tt.words), 0.001)
		})
	}
}

func TestEveryday(t *testing.T) {
	assert.True(t, everyday("anything", true))
	assert.True(t, everyday("Public Housing Policy", false))
	assert.False(t, everyday("Foreign Affairs", false))
}

func TestEmotion(t *testing.T) {
	assert.Equal(t, 1.0, emotion("Angry"))
	assert.Equal(t, 0.6, emotion("Concerned"))
	assert.Equal(t, 0.3, emotion("neutral"))
}

func TestFinalScore(t *testing.T) {
	t.Run("clips at 10", func(t *testing.T) {
		score := finalScore(10, 1.0, true, 1.0, true, 1.0)
		assert.Equal(t, 10.0, score)
	})

	t.Run("clips at 0", func(t *testing.T) {
		score := finalScore(0, 0, false, 0, false, 0)
		assert.Equal(t, 0.0, score)
	})

	t.Run("composes weighted terms", func(t *testing.T) {
		score := finalScore(5, 0.5, false, 0.5, false, 0.5)
		assert.InDelta(t, 5*0.4+0.5*2.0+0.5*1.0+0.5*3.0, score, 0.001)
	})
}

func TestAnalyze(t *testing.T) {
	req := AnalyzeRequest{
		Quote:               "We will not rule out a review, though we are still considering alternatives for housing.",
		Speaker:             "Minister",
		Topic:               "housing policy",
		EmotionalTone:       "defensive",
		AIScore:             6,
		HasContradiction:    false,
		AffectsEverydayLife: false,
	}
	result := Analyze(req)

	assert.True(t, result.Contradiction)
	assert.True(t, result.Everyday)
	assert.Equal(t, 1.0, result.Emotion)
	assert.Greater(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 10.0)
}
