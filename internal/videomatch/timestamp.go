package videomatch

import (
	"context"
	"strings"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/types"
)

// TimestampResult locates a quote within the matched video, expressed
// as an estimated offset since the recording's captions/audio-alignment
// artifact is out of this core's scope (§1 non-goals: audio
// transcription is an externally invoked job, not reproduced here).
type TimestampResult struct {
	VideoID        string `json:"video_id"`
	URL            string `json:"url"`
	SegmentID      string `json:"segment_id"`
	EstimatedSeconds int  `json:"estimated_seconds"`
}

// FindTimestamp locates quote within transcriptID's segments and maps
// its position onto the matched video's duration by segment-index
// proportion: (segment_index / segment_count) * duration_seconds. This
// is a best-effort estimate, not a caption-aligned timestamp.
func (s *Service) FindTimestamp(ctx context.Context, ingest *ingestion.Service, transcriptID, quote string) (*TimestampResult, error) {
	match, err := s.GetMatch(ctx, transcriptID)
	if err != nil {
		return nil, err
	}

	transcript, err := ingest.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	if len(transcript.Segments) == 0 {
		return nil, apperrors.NewNotFoundError("transcript has no segments")
	}

	segment, ok := findSegmentByQuote(transcript, quote)
	if !ok {
		return nil, apperrors.NewNotFoundError("quote not found in transcript")
	}

	fraction := float64(segment.SegmentIndex) / float64(len(transcript.Segments))
	estimated := int(fraction * float64(match.DurationSeconds))

	return &TimestampResult{
		VideoID:          match.VideoID,
		URL:              match.URL,
		SegmentID:        segment.ID,
		EstimatedSeconds: estimated,
	}, nil
}

func findSegmentByQuote(transcript *types.ProcessedTranscript, quote string) (types.Segment, bool) {
	needle := strings.ToLower(strings.TrimSpace(quote))
	if needle == "" {
		return types.Segment{}, false
	}
	for _, seg := range transcript.Segments {
		if strings.Contains(strings.ToLower(seg.Text), needle) {
			return seg, true
		}
	}
	return types.Segment{}, false
}
