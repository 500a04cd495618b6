// Package moments implements LLM-driven candidate proposal, deterministic
// rescoring, context attachment, embedding, and semantic indexing of
// "viral moments" over a Processed Transcript (§4.2).
package moments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/types"
)

// proposeCandidates calls the extraction LLM once with the full
// transcript and returns every candidate that parses and validates.
// A full-parse failure yields an empty set, not an error (§4.2).
func proposeCandidates(ctx context.Context, model chat.Chat, transcript *types.ProcessedTranscript) ([]types.MomentCandidate, error) {
	prompt := BuildPrompt(transcript)
	resp, err := model.Chat(ctx, []chat.Message{
		{Role: "user", Content: prompt},
	}, &chat.ChatOptions{Temperature: 0.7, MaxTokens: 4000})
	if err != nil {
		return nil, apperrors.NewUpstreamError("moment extraction llm call", err)
	}

	cleaned := stripCodeFence(resp.Content)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, nil
	}

	candidates := make([]types.MomentCandidate, 0, len(elements))
	for _, raw := range elements {
		candidate, ok := validCandidate(raw)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// buildMoment runs the deterministic rescore over one candidate and
// attaches neighbouring-segment context, producing the persisted
// Moment shape.
func buildMoment(transcriptID string, candidate types.MomentCandidate, transcript *types.ProcessedTranscript) types.Moment {
	jargon := jargonDensity(candidate.Quote)
	hasContradiction := contradiction(candidate.Quote, candidate.HasContradiction)
	quot := quotability(wordCount(candidate.Quote))
	isEveryday := everyday(candidate.Topic, candidate.AffectsEverydayLife)
	emo := emotion(candidate.EmotionalTone)
	score := finalScore(candidate.AIScore, jargon, hasContradiction, quot, isEveryday, emo)

	segmentIDs, contextBefore, contextAfter, timestampRange := attachContext(transcript, candidate.SegmentIndices)

	return types.Moment{
		MomentID:          fmt.Sprintf("%s-m-%s", transcriptID, momentSuffix(candidate)),
		TranscriptID:      transcriptID,
		Quote:             candidate.Quote,
		Speaker:           candidate.Speaker,
		TimestampRange:    timestampRange,
		ContextBefore:     contextBefore,
		ContextAfter:      contextAfter,
		FinalScore:        score,
		WhyViral:          candidate.WhyViral,
		Topic:             candidate.Topic,
		EmotionalTone:     candidate.EmotionalTone,
		TargetDemographic: candidate.TargetDemographic,
		SegmentIDs:        segmentIDs,
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func momentSuffix(candidate types.MomentCandidate) string {
	if len(candidate.SegmentIndices) == 0 {
		return "0"
	}
	return fmt.Sprintf("%d", candidate.SegmentIndices[0])
}

// attachContext resolves a candidate's segment_indices against the
// transcript, producing the stable segment ids referenced and the
// preceding/following segment text as context. Out-of-range indices
// are skipped rather than erroring (§9: drift is informational).
func attachContext(transcript *types.ProcessedTranscript, indices []int) (segmentIDs []string, before, after, timestampRange string) {
	if len(indices) == 0 || len(transcript.Segments) == 0 {
		return nil, "", "", ""
	}

	minIdx, maxIdx := indices[0], indices[0]
	for _, i := range indices {
		if i < minIdx {
			minIdx = i
		}
		if i > maxIdx {
			maxIdx = i
		}
	}

	for _, i := range indices {
		if i >= 0 && i < len(transcript.Segments) {
			segmentIDs = append(segmentIDs, transcript.Segments[i].ID)
		}
	}

	if minIdx-1 >= 0 && minIdx-1 < len(transcript.Segments) {
		before = transcript.Segments[minIdx-1].Text
	}
	if maxIdx+1 >= 0 && maxIdx+1 < len(transcript.Segments) {
		after = transcript.Segments[maxIdx+1].Text
	}

	if minIdx >= 0 && minIdx < len(transcript.Segments) {
		timestampRange = transcript.Segments[minIdx].Timestamp
	}
	return segmentIDs, before, after, timestampRange
}
