package types

import "time"

// VideoMatch is the best-matching video recording bound to a transcript.
type VideoMatch struct {
	TranscriptID     string    `json:"transcript_id"`
	VideoID          string    `json:"video_id"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	DurationSeconds  int       `json:"duration_seconds"`
	PublishedAt      time.Time `json:"published_at"`
	ChannelID        string    `json:"channel_id"`
	ConfidenceScore  float64   `json:"confidence_score"`
	MatchCriteria    []string  `json:"match_criteria"`
	HasCaptions      bool      `json:"has_captions"`
}

// VideoCandidate is one result from the external video catalog search,
// before confidence scoring.
type VideoCandidate struct {
	VideoID         string
	Title           string
	Description     string
	URL             string
	DurationSeconds int
	PublishedAt     time.Time
	ChannelID       string
	IsLivestream    bool
	HasCaptions     bool
}
