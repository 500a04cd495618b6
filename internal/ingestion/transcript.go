package ingestion

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sghansard/hansardkb/internal/types"
)

// BuildProcessedTranscript normalizes every section of raw and produces
// the ordered segment stream with globally monotonic segment indices
// (not reset per section), plus derived speaker/topic sets.
func BuildProcessedTranscript(transcriptID string, isoDate string, raw *types.RawHansard) (*types.ProcessedTranscript, error) {
	var segments []types.Segment
	speakerSeen := map[string]bool{}
	var speakers []string
	topicSeen := map[string]bool{}
	var topics []string

	index := 0
	for _, section := range raw.Sections {
		normalized, err := normalizeSection(section)
		if err != nil {
			return nil, err
		}
		if !topicSeen[section.Title] && section.Title != "" {
			topicSeen[section.Title] = true
			topics = append(topics, section.Title)
		}
		for _, ns := range normalized {
			cleanedText := strings.TrimSpace(ns.text)
			seg := types.Segment{
				ID:           idFor(transcriptID, index),
				SegmentIndex: index,
				Speaker:      ns.speaker,
				Text:         cleanedText,
				Timestamp:    ns.timestamp,
				SectionTitle: ns.sectionTitle,
				SectionType:  ns.sectionType,
				Page:         ns.page,
				WordCount:    wordCount(cleanedText),
				CharCount:    utf8.RuneCountInString(cleanedText),
			}
			segments = append(segments, seg)
			if seg.Speaker != "" && !speakerSeen[seg.Speaker] {
				speakerSeen[seg.Speaker] = true
				speakers = append(speakers, seg.Speaker)
			}
			index++
		}
	}

	return &types.ProcessedTranscript{
		TranscriptID: transcriptID,
		SittingDate:  isoDate,
		DisplayDate:  raw.DisplayDate,
		ParliamentNo: raw.ParliamentNo,
		SessionNo:    raw.SessionNo,
		Segments:     segments,
		Speakers:     speakers,
		Topics:       topics,
		Attendance:   raw.Attendance,
		ProcessedAt:  time.Now(),
	}, nil
}

func idFor(transcriptID string, index int) string {
	return transcriptID + "-" + strconv.Itoa(index)
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
