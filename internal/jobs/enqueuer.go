package jobs

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/sghansard/hansardkb/internal/types"
)

// Enqueuer submits per-item batch tasks and immediately records their
// queued status, returning task ids to the caller without waiting for
// completion (§6 /api/moments/batch, /bulk-embed).
type Enqueuer struct {
	client *asynq.Client
	status *StatusStore
}

func NewEnqueuer(redisAddr string, status *StatusStore) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		status: status,
	}
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// EnqueueMomentsBatch queues one extraction task per transcript id and
// returns per-item queued status immediately.
func (e *Enqueuer) EnqueueMomentsBatch(ctx context.Context, criteria types.MomentCriteria, transcriptIDs []string) ([]ItemStatus, error) {
	out := make([]ItemStatus, 0, len(transcriptIDs))
	for _, id := range transcriptIDs {
		task, err := NewMomentsBatchTask(MomentsBatchPayload{
			TranscriptID: id,
			MinScore:     criteria.MinScore,
			MaxResults:   criteria.MaxResults,
			TopicAllow:   criteria.TopicAllow,
			SpeakerAllow: criteria.SpeakerAllow,
		})
		if err != nil {
			out = append(out, ItemStatus{TranscriptID: id, State: StateFailed, Error: err.Error()})
			continue
		}
		info, err := e.client.EnqueueContext(ctx, task)
		status := ItemStatus{TranscriptID: id, State: StateQueued}
		if err != nil {
			status = ItemStatus{TranscriptID: id, State: StateFailed, Error: err.Error()}
		} else {
			status.TaskID = info.ID
		}
		if wErr := e.status.SetMomentsBatchStatus(ctx, status); wErr != nil {
			// Advisory write; the queued task remains the source of truth.
			status.Error = appendErr(status.Error, wErr)
		}
		out = append(out, status)
	}
	return out, nil
}

// EnqueueBulkEmbed queues one embed task per transcript id.
func (e *Enqueuer) EnqueueBulkEmbed(ctx context.Context, transcriptIDs []string, force bool) ([]ItemStatus, error) {
	out := make([]ItemStatus, 0, len(transcriptIDs))
	for _, id := range transcriptIDs {
		task, err := NewBulkEmbedTask(BulkEmbedPayload{TranscriptID: id, Force: force})
		if err != nil {
			out = append(out, ItemStatus{TranscriptID: id, State: StateFailed, Error: err.Error()})
			continue
		}
		info, err := e.client.EnqueueContext(ctx, task)
		status := ItemStatus{TranscriptID: id, State: StateQueued}
		if err != nil {
			status = ItemStatus{TranscriptID: id, State: StateFailed, Error: err.Error()}
		} else {
			status.TaskID = info.ID
		}
		if wErr := e.status.SetBulkEmbedStatus(ctx, status); wErr != nil {
			status.Error = appendErr(status.Error, wErr)
		}
		out = append(out, status)
	}
	return out, nil
}

func appendErr(existing string, err error) string {
	if existing == "" {
		return err.Error()
	}
	return existing + "; " + err.Error()
}
