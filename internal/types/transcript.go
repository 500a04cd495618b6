package types

import "time"

// SectionType is one of the five structural section kinds a Hansard
// sitting is divided into.
type SectionType string

const (
	SectionOS     SectionType = "OS"
	SectionOA     SectionType = "OA"
	SectionBills  SectionType = "BILLS"
	SectionPapers SectionType = "PAPERS"
	SectionOther  SectionType = "OTHER"
)

// RawSection is one section of the upstream Hansard document, carrying
// its HTML content body verbatim.
type RawSection struct {
	Page    int         `json:"page"`
	Title   string      `json:"title"`
	Type    SectionType `json:"type"`
	Content string      `json:"content"`
}

// AttendanceRecord is one entry of the upstream attendance list.
type AttendanceRecord struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// RawHansard is the upstream JSON document, persisted verbatim under a
// date-partitioned object key for auditability.
type RawHansard struct {
	ParliamentNo  int                `json:"parliament_no"`
	SessionNo     int                `json:"session_no"`
	SittingDate   string             `json:"sitting_date"`
	DisplayDate   string             `json:"display_date"`
	StartTime     string             `json:"start_time,omitempty"`
	SpeakerHouse  string             `json:"speaker_of_the_house,omitempty"`
	Sections      []RawSection       `json:"sections"`
	Attendance    []AttendanceRecord `json:"attendance"`
}

// Segment is one contiguous speech by a single speaker within a section.
type Segment struct {
	ID           string `json:"id"`
	SegmentIndex int    `json:"segment_index"`
	Speaker      string `json:"speaker"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp,omitempty"`
	SectionTitle string `json:"section_title"`
	SectionType  SectionType `json:"section_type"`
	Page         int    `json:"page"`
	WordCount    int    `json:"word_count"`
	CharCount    int    `json:"char_count"`
}

// ProcessedTranscript is the normalized form produced by ingestion: an
// ordered sequence of segments plus derived metadata.
type ProcessedTranscript struct {
	TranscriptID string             `json:"transcript_id"`
	SittingDate  string             `json:"sitting_date"`
	DisplayDate  string             `json:"display_date"`
	ParliamentNo int                `json:"parliament_no"`
	SessionNo    int                `json:"session_no"`
	Segments     []Segment          `json:"segments"`
	Speakers     []string           `json:"speakers"`
	Topics       []string           `json:"topics"`
	Attendance   []AttendanceRecord `json:"attendance"`
	ProcessedAt  time.Time          `json:"processed_at"`
}

// SegmentIDs returns the stable id of every segment, in source order.
func (t *ProcessedTranscript) SegmentIDs() []string {
	ids := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		ids[i] = s.ID
	}
	return ids
}

// IngestResult is the response of the ingest operation.
type IngestResult struct {
	TranscriptID    string    `json:"transcript_id"`
	SittingDate     string    `json:"sitting_date"`
	Speakers        []string  `json:"speakers"`
	Topics          []string  `json:"topics"`
	SegmentCount    int       `json:"segment_count"`
	Cached          bool      `json:"cached"`
	ProcessingTime  time.Duration `json:"processing_time_ms"`
	RawURI          string    `json:"raw_uri,omitempty"`
	ProcessedURI    string    `json:"processed_uri,omitempty"`
}
