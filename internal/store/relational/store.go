package relational

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/types"
)

// Store wraps a gorm DB handle for the relational mirror and pgvector
// chunk store.
type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, apperrors.NewStoreError("open postgres", err)
	}
	return &Store{db: db}, nil
}

// UpsertTranscript mirrors a processed transcript's summary fields.
func (s *Store) UpsertTranscript(ctx context.Context, t *types.ProcessedTranscript) error {
	row := TranscriptRow{
		TranscriptID: t.TranscriptID,
		SittingDate:  t.SittingDate,
		DisplayDate:  t.DisplayDate,
		ParliamentNo: t.ParliamentNo,
		SessionNo:    t.SessionNo,
		SpeakerCount: len(t.Speakers),
		SegmentCount: len(t.Segments),
		ProcessedAt:  t.ProcessedAt,
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return apperrors.NewStoreError("mirror transcript", err)
	}
	return nil
}

// UpsertVideoMatch mirrors a video match result.
func (s *Store) UpsertVideoMatch(ctx context.Context, m *types.VideoMatch) error {
	row := VideoMatchRow{
		TranscriptID:    m.TranscriptID,
		VideoID:         m.VideoID,
		URL:             m.URL,
		Title:           m.Title,
		DurationSeconds: m.DurationSeconds,
		ConfidenceScore: m.ConfidenceScore,
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return apperrors.NewStoreError("mirror video match", err)
	}
	return nil
}

// ReplaceChunks deletes a transcript's prior chunk rows and inserts the
// new set atomically, mirroring the "owned by RAG Chat, overwritten
// only on forced re-embedding" lifecycle rule.
func (s *Store) ReplaceChunks(ctx context.Context, transcriptID string, chunks []types.Chunk) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transcript_id = ?", transcriptID).Delete(&ChunkRow{}).Error; err != nil {
			return err
		}
		rows := make([]ChunkRow, 0, len(chunks))
		for _, c := range chunks {
			rows = append(rows, ChunkRow{
				ChunkID:         c.ChunkID,
				TranscriptID:    c.TranscriptID,
				ChunkIndex:      c.ChunkIndex,
				Text:            c.Text,
				Speaker:         c.Speaker,
				SectionTitle:    c.SectionTitle,
				SubsectionTitle: c.SubsectionTitle,
				WordCount:       c.WordCount,
				Embedding:       pgvector.NewVector(c.Embedding),
			})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	// Errors from the transaction are returned as-is and wrapped as a
	// store error by the caller, so this function can stay a thin gorm
	// adapter.
}

// SearchChunks performs a pgvector cosine nearest-neighbour search
// scoped to one transcript, dropping rows whose similarity falls below
// minSimilarity so a genuine non-match returns zero results rather than
// the topK nearest rows regardless of relevance (§4.4, §8 scenario 5).
func (s *Store) SearchChunks(ctx context.Context, transcriptID string, embedding []float32, topK int, minSimilarity float64) ([]types.ScoredChunk, error) {
	type scoredRow struct {
		ChunkRow
		Distance float64
	}
	vec := pgvector.NewVector(embedding)
	// similarity = 1 - distance/2; distance <= 2*(1-minSimilarity) is the
	// equivalent bound pushed into the query itself.
	maxDistance := 2 * (1 - minSimilarity)
	var rows []scoredRow
	err := s.db.WithContext(ctx).
		Model(&ChunkRow{}).
		Select("*, embedding <=> ? AS distance", vec).
		Where("transcript_id = ?", transcriptID).
		Where("embedding <=> ? <= ?", vec, maxDistance).
		Order(gorm.Expr("embedding <=> ?", vec)).
		Limit(topK).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewStoreError("search chunks", err)
	}
	out := make([]types.ScoredChunk, 0, len(rows))
	for _, r := range rows {
		// Cosine distance in [0,2]; convert to a similarity-style score
		// in [0,1] so retrieval confidence reads naturally.
		score := 1 - (r.Distance / 2)
		if score < minSimilarity {
			continue
		}
		out = append(out, types.ScoredChunk{
			Chunk: types.Chunk{
				ChunkID:         r.ChunkID,
				TranscriptID:    r.TranscriptID,
				ChunkIndex:      r.ChunkIndex,
				Text:            r.Text,
				Speaker:         r.Speaker,
				SectionTitle:    r.SectionTitle,
				SubsectionTitle: r.SubsectionTitle,
				WordCount:       r.WordCount,
			},
			Score: score,
		})
	}
	return out, nil
}

// ChunkCount returns how many chunk rows exist for a transcript, used
// by the embed_session no-op check.
func (s *Store) ChunkCount(ctx context.Context, transcriptID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ChunkRow{}).Where("transcript_id = ?", transcriptID).Count(&count).Error
	if err != nil {
		return 0, apperrors.NewStoreError("count chunks", err)
	}
	return count, nil
}
