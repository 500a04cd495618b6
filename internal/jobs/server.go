package jobs

import (
	"github.com/hibiken/asynq"

	"github.com/sghansard/hansardkb/internal/types/interfaces"
)

// NewServer builds an asynq worker server and mux with the two
// background task types registered, ready for mux.HandleFunc-style
// dispatch via the shared interfaces.TaskHandler contract.
func NewServer(redisAddr string, concurrency int, momentsHandler, bulkEmbedHandler interfaces.TaskHandler) (*asynq.Server, *asynq.ServeMux) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: concurrency},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMomentsBatch, momentsHandler.Handle)
	mux.HandleFunc(TypeBulkEmbed, bulkEmbedHandler.Handle)

	return server, mux
}
