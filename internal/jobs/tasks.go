// Package jobs backs /api/moments/batch and /bulk-embed (§6) with
// queued per-item asynq tasks instead of serial in-request processing,
// so a large batch returns per-item task ids and enqueue status
// immediately (§7: partial batch failures are surfaced as per-item
// status, never a request-level failure). Workers write each item's
// final outcome to KV; no HTTP route reads those entries back.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

const (
	TypeMomentsBatch = "moments:batch_item"
	TypeBulkEmbed    = "rag:bulk_embed_item"
)

// MomentsBatchPayload is the per-item payload for a moments extraction
// queued from /api/moments/batch.
type MomentsBatchPayload struct {
	TranscriptID string               `json:"transcript_id"`
	MinScore     float64              `json:"min_score,omitempty"`
	MaxResults   int                  `json:"max_results,omitempty"`
	TopicAllow   []string             `json:"topic_allow,omitempty"`
	SpeakerAllow []string             `json:"speaker_allow,omitempty"`
}

// BulkEmbedPayload is the per-item payload for a session embed queued
// from /bulk-embed.
type BulkEmbedPayload struct {
	TranscriptID string `json:"transcript_id"`
	Force        bool   `json:"force,omitempty"`
}

func NewMomentsBatchTask(p MomentsBatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, apperrors.NewInternalError("marshal moments batch payload", err)
	}
	return asynq.NewTask(TypeMomentsBatch, body), nil
}

func NewBulkEmbedTask(p BulkEmbedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, apperrors.NewInternalError("marshal bulk embed payload", err)
	}
	return asynq.NewTask(TypeBulkEmbed, body), nil
}
