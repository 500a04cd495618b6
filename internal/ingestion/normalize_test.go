package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghansard/hansardkb/internal/types"
)

func TestNormalizeSectionSpeakerAndContinuation(t *testing.T) {
	section := types.RawSection{
		Page:  2,
		Title: "Oral Answers",
		Type:  types.SectionOA,
		Content: `<body>
			<h2>9.30 am</h2>
			<p><strong>Ms Wong:</strong> I rise to address the matter.</p>
			<p>A continuation paragraph without a speaker label.</p>
			<p><b>Mr Ong</b>: A second speaker using bold emphasis.</p>
		</body>`,
	}

	segments, err := normalizeSection(section)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "Ms Wong", segments[0].speaker)
	assert.Equal(t, "9.30 am", segments[0].timestamp)
	assert.Equal(t, "I rise to address the matter. A continuation paragraph without a speaker label.", segments[0].text)

	assert.Equal(t, "Mr Ong", segments[1].speaker)
	assert.Equal(t, "9.30 am", segments[1].timestamp)
	assert.Equal(t, "A second speaker using bold emphasis.", segments[1].text)
}

func TestNormalizeSectionDropsUnattributedLeadingParagraph(t *testing.T) {
	section := types.RawSection{
		Title:   "Bills",
		Content: `<body><p>No speaker precedes this.</p></body>`,
	}

	segments, err := normalizeSection(section)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", cleanText("Tom &amp; Jerry"))
	assert.Equal(t, "one two three", cleanText("one   two\n\tthree"))
	assert.Equal(t, "", cleanText("   "))
}
