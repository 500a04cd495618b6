package jobs

import (
	"context"
	"time"

	"github.com/sghansard/hansardkb/internal/store/kv"
)

// ItemStatus is the per-item outcome of a queued batch task, returned
// by the Enqueuer and stored in KV under jobs:moments_batch:{id} or
// jobs:bulk_embed:{id}.
type ItemStatus struct {
	TranscriptID string `json:"transcript_id"`
	TaskID       string `json:"task_id"`
	State        string `json:"state"` // queued | succeeded | failed
	Error        string `json:"error,omitempty"`
}

const (
	StateQueued    = "queued"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

func momentsBatchStatusKey(transcriptID string) string { return "jobs:moments_batch:" + transcriptID }
func bulkEmbedStatusKey(transcriptID string) string     { return "jobs:bulk_embed:" + transcriptID }

// StatusStore records and reads per-item batch job outcomes in KV; no
// HTTP route calls its Get methods. A write failure never fails the
// job: the Enqueuer appends it to the item's Error field and the task
// handlers log it. The job itself is the source of truth, the status
// entry is advisory.
type StatusStore struct {
	cache *kv.Store
}

func NewStatusStore(cache *kv.Store) *StatusStore {
	return &StatusStore{cache: cache}
}

func (s *StatusStore) SetMomentsBatchStatus(ctx context.Context, status ItemStatus) error {
	return s.cache.Set(ctx, momentsBatchStatusKey(status.TranscriptID), status, 24*time.Hour)
}

func (s *StatusStore) GetMomentsBatchStatus(ctx context.Context, transcriptID string) (*ItemStatus, bool, error) {
	var status ItemStatus
	hit, err := s.cache.Get(ctx, momentsBatchStatusKey(transcriptID), &status)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &status, true, nil
}

func (s *StatusStore) SetBulkEmbedStatus(ctx context.Context, status ItemStatus) error {
	return s.cache.Set(ctx, bulkEmbedStatusKey(status.TranscriptID), status, 24*time.Hour)
}

func (s *StatusStore) GetBulkEmbedStatus(ctx context.Context, transcriptID string) (*ItemStatus, bool, error) {
	var status ItemStatus
	hit, err := s.cache.Get(ctx, bulkEmbedStatusKey(transcriptID), &status)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &status, true, nil
}
