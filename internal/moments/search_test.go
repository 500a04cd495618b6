package moments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sghansard/hansardkb/internal/store/keyword"
	"github.com/sghansard/hansardkb/internal/store/vector"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, normalizeVector(nil))
	})

	t.Run("scales by max", func(t *testing.T) {
		hits := []vector.MomentMatch{
			{MomentID: "a", SimilarityScore: 0.8},
			{MomentID: "b", SimilarityScore: 0.4},
		}
		out := normalizeVector(hits)
		assert.Equal(t, 1.0, out["a"])
		assert.Equal(t, 0.5, out["b"])
	})

	t.Run("zero max avoids division by zero", func(t *testing.T) {
		hits := []vector.MomentMatch{{MomentID: "a", SimilarityScore: 0}}
		out := normalizeVector(hits)
		assert.Equal(t, 0.0, out["a"])
	})
}

func TestNormalizeKeyword(t *testing.T) {
	hits := []keyword.MomentMatch{
		{MomentID: "x", Score: 10},
		{MomentID: "y", Score: 5},
	}
	out := normalizeKeyword(hits)
	assert.Equal(t, 1.0, out["x"])
	assert.Equal(t, 0.5, out["y"])
}
