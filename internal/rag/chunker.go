// Package rag implements the RAG chat pipeline of §4.4: transcript
// chunking with overlap, batched embedding with provider fallback,
// filtered vector search, grounded answer generation with citations,
// and streaming responses.
package rag

import (
	"fmt"
	"strings"

	"github.com/sghansard/hansardkb/internal/types"
)

// ChunkParams bounds the chunker; defaults per §4.4 are max 500 tokens,
// 50-token overlap, 100-token minimum chunk. Chunk reads MaxTokens and
// Overlap only: MinTokens is not applied, so a chunk can be shorter
// than it.
type ChunkParams struct {
	MaxTokens int
	Overlap   int
	MinTokens int
}

// estimateTokens approximates token count as ceil(chars/4), the rule
// §4.4 specifies rather than invoking a real tokenizer on the request
// path.
func estimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + 3) / 4
}

// builder accumulates one in-progress chunk.
type builder struct {
	segments     []string
	speaker      string
	sectionTitle string
	tokenCount   int
}

func (b *builder) reset() {
	b.segments = nil
	b.speaker = ""
	b.sectionTitle = ""
	b.tokenCount = 0
}

func (b *builder) text() string {
	return strings.Join(b.segments, " ")
}

// Chunk splits a Processed Transcript into overlapping chunks following
// the segment-wise traversal of §4.4: grow a buffer per segment, emit
// and reseed with the overlap tail whenever the next segment would
// exceed MaxTokens, and flush the final non-empty buffer.
func Chunk(transcript *types.ProcessedTranscript, params ChunkParams) []types.Chunk {
	if params.MaxTokens <= 0 {
		params.MaxTokens = 500
	}
	if params.Overlap < 0 {
		params.Overlap = 0
	}

	var chunks []types.Chunk
	chunkIndex := 0
	cur := &builder{}

	emit := func() {
		if cur.tokenCount == 0 {
			return
		}
		chunks = append(chunks, types.Chunk{
			ChunkID:      fmt.Sprintf("%s_%d", transcript.TranscriptID, chunkIndex),
			TranscriptID: transcript.TranscriptID,
			ChunkIndex:   chunkIndex,
			Text:         cur.text(),
			Speaker:      cur.speaker,
			SectionTitle: cur.sectionTitle,
			WordCount:    len(strings.Fields(cur.text())),
		})
		chunkIndex++
	}

	for _, seg := range transcript.Segments {
		speaker := seg.Speaker
		if speaker == "" {
			speaker = "Narration"
		}
		line := fmt.Sprintf("%s: %s", speaker, seg.Text)
		lineTokens := estimateTokens(line)

		// A single segment larger than MaxTokens is emitted as its own
		// chunk, never split mid-word (§8 boundary behaviour).
		if lineTokens > params.MaxTokens {
			emit()
			cur.reset()
			chunks = append(chunks, types.Chunk{
				ChunkID:      fmt.Sprintf("%s_%d", transcript.TranscriptID, chunkIndex),
				TranscriptID: transcript.TranscriptID,
				ChunkIndex:   chunkIndex,
				Text:         line,
				Speaker:      speaker,
				SectionTitle: seg.SectionTitle,
				WordCount:    len(strings.Fields(line)),
			})
			chunkIndex++
			continue
		}

		if cur.tokenCount > 0 && cur.tokenCount+lineTokens > params.MaxTokens {
			emit()
			overlapText := overlapTail(cur.text(), params.Overlap)
			cur.reset()
			if overlapText != "" {
				cur.segments = append(cur.segments, overlapText)
				cur.tokenCount = estimateTokens(overlapText)
			}
		}

		cur.segments = append(cur.segments, line)
		cur.tokenCount += lineTokens
		cur.speaker = speaker
		cur.sectionTitle = seg.SectionTitle
	}

	emit()
	return chunks
}

// overlapTail returns roughly the last overlapTokens worth of text from
// s, breaking only at word boundaries so the reseeded chunk never
// starts mid-word.
func overlapTail(s string, overlapTokens int) string {
	if overlapTokens <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	// ~4 chars/token approximation, then walk back by words until the
	// budget is met or we run out.
	budgetChars := overlapTokens * 4
	taken := 0
	start := len(words)
	for start > 0 {
		w := words[start-1]
		if taken > 0 && taken+len(w)+1 > budgetChars {
			break
		}
		taken += len(w) + 1
		start--
	}
	return strings.Join(words[start:], " ")
}
