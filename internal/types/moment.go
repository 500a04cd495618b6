package types

import "time"

// Moment is a candidate viral segment surfaced by the moment extractor.
type Moment struct {
	MomentID          string    `json:"moment_id"`
	TranscriptID      string    `json:"transcript_id"`
	Quote             string    `json:"quote"`
	Speaker           string    `json:"speaker"`
	TimestampRange    string    `json:"timestamp_range,omitempty"`
	ContextBefore     string    `json:"context_before"`
	ContextAfter      string    `json:"context_after"`
	FinalScore        float64   `json:"final_score"`
	WhyViral          string    `json:"why_viral"`
	Topic             string    `json:"topic"`
	EmotionalTone     string    `json:"emotional_tone"`
	TargetDemographic string    `json:"target_demographic"`
	SegmentIDs        []string  `json:"segment_ids"`
	Embedding         []float32 `json:"embedding,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// MomentCandidate is the shape the LLM is instructed to return for each
// proposed moment, before deterministic rescoring.
type MomentCandidate struct {
	Quote                string  `json:"quote"`
	Speaker              string  `json:"speaker"`
	WhyViral             string  `json:"why_viral"`
	AIScore              float64 `json:"ai_score"`
	Topic                string  `json:"topic"`
	EmotionalTone        string  `json:"emotional_tone"`
	TargetDemographic    string  `json:"target_demographic"`
	ContainsJargon       bool    `json:"contains_jargon"`
	HasContradiction     bool    `json:"has_contradiction"`
	AffectsEverydayLife  bool    `json:"affects_everyday_life"`
	SegmentIndices       []int   `json:"segment_indices"`
}

// MomentCriteria filters and bounds the extraction result.
type MomentCriteria struct {
	MinScore     float64  `json:"min_score"`
	MaxResults   int      `json:"max_results"`
	TopicAllow   []string `json:"topic_allow,omitempty"`
	SpeakerAllow []string `json:"speaker_allow,omitempty"`
}

// MomentStats summarizes one extraction result.
type MomentStats struct {
	CountByTopic  map[string]int     `json:"count_by_topic"`
	CountBySpeaker map[string]int    `json:"count_by_speaker"`
	CountByTone   map[string]int     `json:"count_by_tone"`
	MeanScore     float64            `json:"mean_score"`
}

// ExtractionResult is the response of the moment extraction operation.
type ExtractionResult struct {
	TranscriptID string      `json:"transcript_id"`
	Moments      []Moment    `json:"moments"`
	TopMoment    *Moment     `json:"top_moment,omitempty"`
	Stats        MomentStats `json:"stats"`
	ProcessedAt  time.Time   `json:"processed_at"`
	ModelID      string      `json:"model_id"`
}
