package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghansard/hansardkb/internal/types"
)

func TestBuildProcessedTranscript(t *testing.T) {
	raw := &types.RawHansard{
		ParliamentNo: 14,
		SessionNo:    2,
		SittingDate:  "2026-03-05",
		DisplayDate:  "5 March 2026",
		Sections: []types.RawSection{
			{
				Page:  1,
				Title: "Oral Answers to Questions",
				Type:  types.SectionOA,
				Content: `<body>
					<h2>2.30 pm</h2>
					<p><strong>Mr Speaker:</strong> The House will come to order.</p>
					<p><strong>Minister Tan:</strong> We will review the housing policy.</p>
					<p>This continues my previous remarks on the same matter.</p>
					<p><strong>Mr Lim:</strong> Thank you, Minister.</p>
				</body>`,
			},
			{
				Page:    5,
				Title:   "Bills",
				Type:    types.SectionBills,
				Content: `<body><p><strong>Minister Tan:</strong> The Bill is read a first time.</p></body>`,
			},
		},
	}

	processed, err := BuildProcessedTranscript("2026-03-05-p14-s2", "2026-03-05", raw)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-05-p14-s2", processed.TranscriptID)
	assert.Equal(t, []string{"Oral Answers to Questions", "Bills"}, processed.Topics)
	assert.ElementsMatch(t, []string{"Mr Speaker", "Minister Tan", "Mr Lim"}, processed.Speakers)

	require.Len(t, processed.Segments, 4)
	assert.Equal(t, "2.30 pm", processed.Segments[0].Timestamp)
	assert.Equal(t, "The House will come to order.", processed.Segments[0].Text)
	assert.Equal(t, "We will review the housing policy. This continues my previous remarks on the same matter.", processed.Segments[1].Text)

	// Segment indices are globally monotonic, not reset per section.
	for i, seg := range processed.Segments {
		assert.Equal(t, i, seg.SegmentIndex)
	}
	assert.Equal(t, "Bills", processed.Segments[3].SectionTitle)
}

func TestBuildProcessedTranscriptDropsOrphanContinuation(t *testing.T) {
	raw := &types.RawHansard{
		SittingDate: "2026-03-05",
		Sections: []types.RawSection{
			{
				Title: "Oral Answers",
				Content: `<body>
					<p>No speaker preceded this line, so it is dropped.</p>
					<p><strong>Minister Tan:</strong> First statement.</p>
				</body>`,
			},
		},
	}

	processed, err := BuildProcessedTranscript("t1", "2026-03-05", raw)
	require.NoError(t, err)
	require.Len(t, processed.Segments, 1)
	assert.Equal(t, "First statement.", processed.Segments[0].Text)
}
