// Package relational provides a postgres-backed relational mirror of
// ingested transcripts and video matches for admin/analytics queries,
// and doubles as the RAG chunk vector store via pgvector.
package relational

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// TranscriptRow mirrors a ProcessedTranscript for relational querying.
type TranscriptRow struct {
	TranscriptID string `gorm:"primaryKey"`
	SittingDate  string `gorm:"index"`
	DisplayDate  string
	ParliamentNo int
	SessionNo    int
	SpeakerCount int
	SegmentCount int
	ProcessedAt  time.Time
}

func (TranscriptRow) TableName() string { return "transcripts" }

// VideoMatchRow mirrors a VideoMatch.
type VideoMatchRow struct {
	TranscriptID    string `gorm:"primaryKey"`
	VideoID         string
	URL             string
	Title           string
	DurationSeconds int
	ConfidenceScore float64
	CreatedAt       time.Time
}

func (VideoMatchRow) TableName() string { return "video_matches" }

// ChunkRow is a RAG chunk with its embedding stored as a pgvector
// column, used as the RAG chunk vector store (the DOMAIN STACK's
// pgvector-backed component, distinct from the qdrant moments index).
type ChunkRow struct {
	ChunkID         string `gorm:"primaryKey"`
	TranscriptID    string `gorm:"index"`
	ChunkIndex      int
	Text            string
	Speaker         string
	SectionTitle    string
	SubsectionTitle string
	WordCount       int
	Embedding       pgvector.Vector `gorm:"type:vector(1536)"`
}

func (ChunkRow) TableName() string { return "rag_chunks" }
