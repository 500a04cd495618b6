package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/tracing"
	"github.com/sghansard/hansardkb/internal/types"
)

const systemPrompt = `You are answering questions about a Singapore Parliament Hansard sitting using only the provided context.
Answer only from the context given below. If the context does not contain the answer, say so plainly rather than guessing.
Name speakers by name when the context identifies them. Never invent facts not present in the context. Use direct quotes sparingly.`

// ChatRequest is the input to chat(...) and chat_stream(...).
type ChatRequest struct {
	TranscriptID string
	Question     string
	MaxResults   int
}

// noRelevantContextAnswer is returned verbatim (without calling the
// LLM) when retrieval returns zero matches (§4.4, §8 testable property).
const noRelevantContextAnswer = "I could not find any relevant information in this transcript to answer that question."

// Chat implements chat(transcript_id, question, max_results?).
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*types.ChatAnswer, error) {
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
		logger.Stage(ctx, stageName, "empty_retrieval", map[string]interface{}{"transcript_id": req.TranscriptID})
		return &types.ChatAnswer{Answer: noRelevantContextAnswer, Citations: []types.Citation{}}, nil
	}

	contextBlock, citations := assembleContext(scored)

	messages := []chat.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, req.Question)},
	}
	opts := &chat.ChatOptions{Temperature: s.chatTemperature, MaxTokens: s.chatMaxTokens}

	resp, err := s.chatWithFallback(ctx, messages, opts)
	if err != nil {
		// On any chat error after retrieval but during generation, return
		// the retrieved citations with a failure-shaped answer (§7).
		logger.StageError(ctx, stageName, "generation_failed", map[string]interface{}{"error": err.Error()})
		return &types.ChatAnswer{
			Answer:    "An error occurred while generating the answer from the retrieved context.",
			Citations: citations,
			Failed:    true,
		}, nil
	}

	return &types.ChatAnswer{
		Answer:    resp.Content,
		Citations: citations,
		ModelUsed: resp.ModelUsed,
	}, nil
}

func (s *Service) requireEmbedded(ctx context.Context, transcriptID string) (*types.EmbeddedMarker, bool, error) {
	var marker types.EmbeddedMarker
	hit, err := s.cache.Get(ctx, kv.EmbeddedKey(transcriptID), &marker)
	if err != nil {
		return nil, false, err
	}
	if !hit {
		return nil, false, nil
	}
	return &marker, true, nil
}

func (s *Service) retrieve(ctx context.Context, req ChatRequest, marker *types.EmbeddedMarker) ([]types.ScoredChunk, error) {
	ctx, span := tracing.StartSpan(ctx, stageName, "retrieve")
	defer span.End()

	topK := req.MaxResults
	if topK <= 0 {
		topK = s.defaultMaxResults
	}
	if topK > s.maxResultsCap {
		topK = s.maxResultsCap
	}

	qVec, err := s.embedQuestion(ctx, req.Question, marker)
	if err != nil {
		return nil, err
	}

	scored, err := s.mirror.SearchChunks(ctx, req.TranscriptID, qVec, topK, s.minSimilarity)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored, nil
}

// assembleContext concatenates matched chunks in descending score order
// as labelled sources, and builds the parallel citation list (§4.4).
func assembleContext(scored []types.ScoredChunk) (string, []types.Citation) {
	var b strings.Builder
	citations := make([]types.Citation, 0, len(scored))

	for i, sc := range scored {
		speaker := sc.Chunk.Speaker
		if speaker == "" {
			speaker = "Unknown Speaker"
		}
		confidencePct := sc.Score * 100

		fmt.Fprintf(&b, "--- Source %d (Confidence: %.1f%%) ---\n", i+1, confidencePct)
		fmt.Fprintf(&b, "[%s]\n", speaker)
		if sc.Chunk.SectionTitle != "" {
			fmt.Fprintf(&b, "Section: %s\n", sc.Chunk.SectionTitle)
		}
		b.WriteString(sc.Chunk.Text)
		b.WriteString("\n\n")

		citations = append(citations, types.Citation{
			Text:       truncate(sc.Chunk.Text, 200),
			Speaker:    sc.Chunk.Speaker,
			Section:    sc.Chunk.SectionTitle,
			Confidence: sc.Score,
		})
	}

	return b.String(), citations
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// chatWithFallback tries the primary chat model first, falling back to
// the secondary model if the primary is unavailable (§4.4).
func (s *Service) chatWithFallback(ctx context.Context, messages []chat.Message, opts *chat.ChatOptions) (*chat.ChatResponse, error) {
	if s.chatPrimary != nil {
		resp, err := s.chatPrimary.Chat(ctx, messages, opts)
		if err == nil {
			return resp, nil
		}
		logger.StageWarn(ctx, stageName, "primary_chat_failed", map[string]interface{}{"error": err.Error()})
	}
	if s.chatFallback == nil {
		return nil, apperrors.NewUpstreamError("no chat provider available", nil)
	}
	return s.chatFallback.Chat(ctx, messages, opts)
}
