package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/moments"
	"github.com/sghansard/hansardkb/internal/rag"
	"github.com/sghansard/hansardkb/internal/types"
)

// MomentsBatchHandler runs one transcript's extraction per task,
// implementing interfaces.TaskHandler.
type MomentsBatchHandler struct {
	service *moments.Service
	status  *StatusStore
}

func NewMomentsBatchHandler(service *moments.Service, status *StatusStore) *MomentsBatchHandler {
	return &MomentsBatchHandler{service: service, status: status}
}

func (h *MomentsBatchHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload MomentsBatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return apperrors.NewInternalError("unmarshal moments batch payload", err)
	}

	criteria := types.MomentCriteria{
		MinScore:     payload.MinScore,
		MaxResults:   payload.MaxResults,
		TopicAllow:   payload.TopicAllow,
		SpeakerAllow: payload.SpeakerAllow,
	}

	_, err := h.service.Extract(ctx, payload.TranscriptID, criteria)
	status := ItemStatus{TranscriptID: payload.TranscriptID, State: StateSucceeded}
	if err != nil {
		status = ItemStatus{TranscriptID: payload.TranscriptID, State: StateFailed, Error: err.Error()}
	}
	if wErr := h.status.SetMomentsBatchStatus(ctx, status); wErr != nil {
		logger.Warnf(ctx, "jobs: failed to record moments batch status for %s: %v", payload.TranscriptID, wErr)
	}
	// The per-item status above is recorded in KV; the task itself is
	// reported done to asynq regardless so a single bad transcript never
	// blocks the rest of the batch (§7 partial batch failure policy).
	return nil
}

// BulkEmbedHandler runs one session's embed per task.
type BulkEmbedHandler struct {
	service *rag.Service
	status  *StatusStore
}

func NewBulkEmbedHandler(service *rag.Service, status *StatusStore) *BulkEmbedHandler {
	return &BulkEmbedHandler{service: service, status: status}
}

func (h *BulkEmbedHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload BulkEmbedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return apperrors.NewInternalError("unmarshal bulk embed payload", err)
	}

	_, err := h.service.EmbedSession(ctx, payload.TranscriptID, payload.Force)
	status := ItemStatus{TranscriptID: payload.TranscriptID, State: StateSucceeded}
	if err != nil {
		status = ItemStatus{TranscriptID: payload.TranscriptID, State: StateFailed, Error: err.Error()}
	}
	if wErr := h.status.SetBulkEmbedStatus(ctx, status); wErr != nil {
		logger.Warnf(ctx, "jobs: failed to record bulk embed status for %s: %v", payload.TranscriptID, wErr)
	}
	return nil
}
