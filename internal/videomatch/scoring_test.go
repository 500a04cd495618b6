package videomatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghansard/hansardkb/internal/types"
)

func sittingDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2026-03-05")
	require.NoError(t, err)
	return d
}

func TestScoreCandidateSameDayWithKeywordsAndDuration(t *testing.T) {
	sd := sittingDate(t)
	candidate := types.VideoCandidate{
		VideoID:         "abc123",
		Title:           "Parliament Sitting - Budget Debate",
		Description:     "Full recording of the parliamentary sitting.",
		DurationSeconds: 4000,
		PublishedAt:     sd,
		IsLivestream:    true,
	}

	scored := scoreCandidate(candidate, sd, nil)

	assert.Equal(t, 9.5, scored.score) // 4 (same_day) + 2 (title) + 2 (long duration) + 1 (livestream) + 0.5 (description)
	assert.Contains(t, scored.factors, factorSameDay)
	assert.Contains(t, scored.factors, factorTitleKeyword)
	assert.Contains(t, scored.factors, factorLongDuration)
	assert.Contains(t, scored.factors, factorLivestream)
	assert.Contains(t, scored.factors, factorDescriptionKeyword)
}

func TestScoreCandidateDistantDateNoBonuses(t *testing.T) {
	sd := sittingDate(t)
	candidate := types.VideoCandidate{
		VideoID:         "distant",
		Title:           "Unrelated cooking show",
		DurationSeconds: 600,
		PublishedAt:     sd.AddDate(0, 0, 10),
	}

	scored := scoreCandidate(candidate, sd, nil)
	assert.Equal(t, 0.0, scored.score)
	assert.Empty(t, scored.factors)
}

func TestScoreCandidateSpeakerMention(t *testing.T) {
	sd := sittingDate(t)
	candidate := types.VideoCandidate{
		VideoID:     "speaker",
		Title:       "Minister Tan addresses the house",
		Description: "",
		PublishedAt: sd,
	}

	scored := scoreCandidate(candidate, sd, []string{"Minister Tan"})
	assert.Contains(t, scored.factors, factorSpeakerMention)
}

func TestSelectBest(t *testing.T) {
	t.Run("empty returns false", func(t *testing.T) {
		_, ok := selectBest(nil)
		assert.False(t, ok)
	})

	t.Run("highest score wins", func(t *testing.T) {
		low := scoredCandidate{candidate: types.VideoCandidate{VideoID: "low"}, score: 2}
		high := scoredCandidate{candidate: types.VideoCandidate{VideoID: "high"}, score: 8}
		best, ok := selectBest([]scoredCandidate{low, high})
		require.True(t, ok)
		assert.Equal(t, "high", best.candidate.VideoID)
	})

	t.Run("tie breaks on closeness to sitting date", func(t *testing.T) {
		far := scoredCandidate{candidate: types.VideoCandidate{VideoID: "far"}, score: 5, dateDelta: 3 * 24 * time.Hour}
		near := scoredCandidate{candidate: types.VideoCandidate{VideoID: "near"}, score: 5, dateDelta: 1 * 24 * time.Hour}
		best, ok := selectBest([]scoredCandidate{far, near})
		require.True(t, ok)
		assert.Equal(t, "near", best.candidate.VideoID)
	})

	t.Run("tie on date breaks on longer duration", func(t *testing.T) {
		short := scoredCandidate{candidate: types.VideoCandidate{VideoID: "short", DurationSeconds: 100}, score: 5, dateDelta: time.Hour}
		long := scoredCandidate{candidate: types.VideoCandidate{VideoID: "long", DurationSeconds: 500}, score: 5, dateDelta: time.Hour}
		best, ok := selectBest([]scoredCandidate{short, long})
		require.True(t, ok)
		assert.Equal(t, "long", best.candidate.VideoID)
	})
}
