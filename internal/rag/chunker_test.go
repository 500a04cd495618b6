package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghansard/hansardkb/internal/types"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abcd"))
	assert.Equal(t, 2, estimateTokens("abcde"))
}

func TestChunkSmallTranscriptProducesOneChunk(t *testing.T) {
	transcript := &types.ProcessedTranscript{
		TranscriptID: "t1",
		Segments: []types.Segment{
			{Speaker: "Minister Tan", Text: "We will review housing policy.", SectionTitle: "Oral Answers"},
			{Speaker: "Minister Tan", Text: "Next year's budget allocates more funding.", SectionTitle: "Oral Answers"},
		},
	}

	chunks := Chunk(transcript, ChunkParams{MaxTokens: 500, Overlap: 50, MinTokens: 100})
	require.Len(t, chunks, 1)
	assert.Equal(t, "t1_0", chunks[0].ChunkID)
	assert.Contains(t, chunks[0].Text, "We will review housing policy")
	assert.Contains(t, chunks[0].Text, "Next year's budget")
}

func TestChunkSplitsOnMaxTokens(t *testing.T) {
	longText := strings.Repeat("word ", 200) // ~1000 chars, well over a small MaxTokens budget
	transcript := &types.ProcessedTranscript{
		TranscriptID: "t2",
		Segments: []types.Segment{
			{Speaker: "A", Text: longText, SectionTitle: "Bills"},
			{Speaker: "B", Text: longText, SectionTitle: "Bills"},
		},
	}

	chunks := Chunk(transcript, ChunkParams{MaxTokens: 50, Overlap: 5, MinTokens: 10})
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
	}
}

func TestChunkOversizedSegmentEmittedAlone(t *testing.T) {
	huge := strings.Repeat("word ", 1000)
	transcript := &types.ProcessedTranscript{
		TranscriptID: "t3",
		Segments: []types.Segment{
			{Speaker: "A", Text: "short intro", SectionTitle: "Bills"},
			{Speaker: "B", Text: huge, SectionTitle: "Bills"},
		},
	}

	chunks := Chunk(transcript, ChunkParams{MaxTokens: 50, Overlap: 5, MinTokens: 10})
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Contains(t, chunks[len(chunks)-1].Text, "word word")
}

func TestOverlapTailBreaksOnWordBoundary(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta"
	tail := overlapTail(text, 5)
	assert.NotEmpty(t, tail)
	for _, w := range strings.Fields(tail) {
		assert.Contains(t, text, w)
	}
}

func TestOverlapTailZeroReturnsEmpty(t *testing.T) {
	assert.Empty(t, overlapTail("anything here", 0))
}
