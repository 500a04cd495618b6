package videomatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghansard/hansardkb/internal/types"
)

func TestFindSegmentByQuote(t *testing.T) {
	transcript := &types.ProcessedTranscript{
		Segments: []types.Segment{
			{ID: "t1-0", SegmentIndex: 0, Text: "We will review housing policy next year."},
			{ID: "t1-1", SegmentIndex: 1, Text: "Thank you, Minister, for the update."},
		},
	}

	t.Run("finds matching substring case-insensitively", func(t *testing.T) {
		seg, ok := findSegmentByQuote(transcript, "REVIEW HOUSING")
		require.True(t, ok)
		assert.Equal(t, "t1-0", seg.ID)
	})

	t.Run("no match returns false", func(t *testing.T) {
		_, ok := findSegmentByQuote(transcript, "something never said")
		assert.False(t, ok)
	})

	t.Run("empty quote returns false", func(t *testing.T) {
		_, ok := findSegmentByQuote(transcript, "   ")
		assert.False(t, ok)
	})
}
