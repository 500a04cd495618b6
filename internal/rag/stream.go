package rag

import (
	"context"
	"fmt"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/types"
)

// StreamResult carries the metadata chat_stream's HTTP surface needs
// before the body starts flowing (§6: X-Model-Used, X-Citations-Count
// headers), plus the lazy fragment channel itself.
type StreamResult struct {
	ModelUsed string
	Citations []types.Citation
	Fragments <-chan chat.StreamChunk
}

// ChatStream implements chat_stream(transcript_id, question, max_results?):
// identical retrieval and context assembly to Chat, then a lazy stream
// of text fragments. Cancelling ctx aborts the upstream LLM call
// promptly (§4.4, §5).
func (s *Service) ChatStream(ctx context.Context, req ChatRequest) (*StreamResult, error) {
	marker, ready, err := s.requireEmbedded(ctx, req.TranscriptID)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, apperrors.NewNotReadyError("session " + req.TranscriptID + " has not been embedded yet")
	}

	scored, err := s.retrieve(ctx, req, marker)
	if err != nil {
		return nil, err
	}

	if len(scored) == 0 {
		logger.Stage(ctx, stageName, "empty_retrieval_stream", map[string]interface{}{"transcript_id": req.TranscriptID})
		out := make(chan chat.StreamChunk, 1)
		out <- chat.StreamChunk{Content: noRelevantContextAnswer, Done: true}
		close(out)
		return &StreamResult{Citations: []types.Citation{}, Fragments: out}, nil
	}

	contextBlock, citations := assembleContext(scored)
	messages := []chat.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, req.Question)},
	}
	opts := &chat.ChatOptions{Temperature: s.chatTemperature, MaxTokens: s.chatMaxTokens}

	model := s.chatPrimary
	modelName := ""
	if model != nil {
		modelName = model.GetModelID()
	}
	fragments, err := model.ChatStream(ctx, messages, opts)
	if err != nil {
		logger.StageWarn(ctx, stageName, "primary_stream_failed", map[string]interface{}{"error": err.Error()})
		if s.chatFallback == nil {
			return nil, apperrors.NewUpstreamError("no chat provider available for streaming", err)
		}
		model = s.chatFallback
		modelName = model.GetModelID()
		fragments, err = model.ChatStream(ctx, messages, opts)
		if err != nil {
			return nil, err
		}
	}

	return &StreamResult{ModelUsed: modelName, Citations: citations, Fragments: fragments}, nil
}

// DrainOnCancel is a convenience the HTTP handler can defer to ensure a
// streaming goroutine is not left blocked writing to an abandoned
// channel when the caller cancels mid-stream: it reads fragments until
// the producer closes the channel.
func DrainOnCancel(ctx context.Context, fragments <-chan chat.StreamChunk) {
	for {
		select {
		case _, ok := <-fragments:
			if !ok {
				return
			}
		case <-ctx.Done():
			for range fragments {
			}
			return
		}
	}
}
