package moments

import (
	"fmt"
	"strings"

	"github.com/sghansard/hansardkb/internal/types"
)

const extractionInstructions = `You are analysing a Singapore Parliament Hansard transcript for "viral moments" — quotable, shareable segments.

Each line below is formatted "[i] speaker: text", where i is a stable segment index.

Return a JSON array of candidate objects (and nothing else). Each object must have exactly these fields:
- quote: string, the exact quotable text (15-300 characters)
- speaker: string
- why_viral: string, one sentence explaining why this would resonate publicly
- ai_score: number in [0,10], your estimate of virality
- topic: string
- emotional_tone: string
- target_demographic: string
- contains_jargon: boolean
- has_contradiction: boolean
- affects_everyday_life: boolean
- segment_indices: array of integers referencing the [i] markers this quote draws from

Only return candidates genuinely worth surfacing. Return an empty array if nothing qualifies.`

// BuildPrompt renders the transcript as "[i] speaker: text" lines per
// segment, the mandatory index markers that anchor moment-to-segment
// traceability (§4.2).
func BuildPrompt(transcript *types.ProcessedTranscript) string {
	var b strings.Builder
	b.WriteString(extractionInstructions)
	b.WriteString("\n\nTranscript:\n")
	for _, seg := range transcript.Segments {
		speaker := seg.Speaker
		if speaker == "" {
			speaker = "Narration"
		}
		fmt.Fprintf(&b, "[%d] %s: %s\n", seg.SegmentIndex, speaker, seg.Text)
	}
	return b.String()
}

// stripCodeFence removes a surrounding ```json ... ``` or ``` ... ```
// fence, if present, before JSON parsing (§9: the extractor sometimes
// wraps its response in a fence).
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
