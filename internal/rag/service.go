package rag

import (
	"context"
	"time"

	"github.com/sghansard/hansardkb/internal/concurrency"
	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/models/embedding"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/store/relational"
	"github.com/sghansard/hansardkb/internal/types"
)

const stageName = "rag"

// Service implements embed_session, session_status, chat, and
// chat_stream (§4.4).
type Service struct {
	ingestion *ingestion.Service
	embedder  *embedding.Chain
	pool      *concurrency.Pool
	mirror    *relational.Store
	cache     *kv.Store

	chatPrimary  chat.Chat
	chatFallback chat.Chat

	chunkParams       ChunkParams
	embedBatchSize    int
	defaultMaxResults int
	maxResultsCap     int
	chatTemperature   float32
	chatMaxTokens     int
	minSimilarity     float64
}

func NewService(
	ingest *ingestion.Service,
	embedder *embedding.Chain,
	pool *concurrency.Pool,
	mirror *relational.Store,
	cache *kv.Store,
	chatPrimary, chatFallback chat.Chat,
	chunkParams ChunkParams,
	defaultMaxResults, maxResultsCap int,
	chatTemperature float32,
	chatMaxTokens int,
	minSimilarity float64,
) *Service {
	return &Service{
		ingestion:         ingest,
		embedder:          embedder,
		pool:              pool,
		mirror:            mirror,
		cache:             cache,
		chatPrimary:       chatPrimary,
		chatFallback:      chatFallback,
		chunkParams:       chunkParams,
		embedBatchSize:    100,
		defaultMaxResults: defaultMaxResults,
		maxResultsCap:     maxResultsCap,
		chatTemperature:   chatTemperature,
		chatMaxTokens:     chatMaxTokens,
		minSimilarity:     minSimilarity,
	}
}

// EmbedResult is the response of embed_session.
type EmbedResult struct {
	TranscriptID string `json:"transcript_id"`
	ChunkCount   int    `json:"chunk_count"`
	Provider     string `json:"provider"`
	Reembedded   bool   `json:"reembedded"`
}

// EmbedSession implements embed_session(transcript_id, force?). A
// force=false call on an already-embedded session is a no-op returning
// the prior chunk_count (§8 idempotence law).
func (s *Service) EmbedSession(ctx context.Context, transcriptID string, force bool) (*EmbedResult, error) {
	if !force {
		var marker types.EmbeddedMarker
		hit, err := s.cache.Get(ctx, kv.EmbeddedKey(transcriptID), &marker)
		if err != nil {
			return nil, err
		}
		if hit {
			return &EmbedResult{TranscriptID: transcriptID, ChunkCount: marker.ChunkCount, Provider: marker.Provider}, nil
		}
	}

	transcript, err := s.ingestion.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	if len(transcript.Segments) == 0 {
		return nil, apperrors.NewBadRequestError("cannot embed a transcript with no segments")
	}

	chunks := Chunk(transcript, s.chunkParams)
	if len(chunks) == 0 {
		return nil, apperrors.NewBadRequestError("chunking produced no content")
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vecs, provider, err := s.embedChunkTexts(ctx, texts)
	if err != nil {
		return nil, apperrors.NewUpstreamError("embed session chunks", err)
	}
	for i := range chunks {
		if i < len(vecs) {
			chunks[i].Embedding = vecs[i]
		}
	}

	if err := s.mirror.ReplaceChunks(ctx, transcriptID, chunks); err != nil {
		return nil, apperrors.NewStoreError("replace session chunks", err)
	}

	marker := types.EmbeddedMarker{
		ChunkCount: len(chunks),
		EmbeddedAt: time.Now().UTC().Format(time.RFC3339),
		Provider:   provider.GetModelName(),
		Dimensions: provider.GetDimensions(),
	}
	if err := s.cache.Set(ctx, kv.EmbeddedKey(transcriptID), marker, 0); err != nil {
		logger.StageWarn(ctx, stageName, "marker_write_failed", map[string]interface{}{"error": err.Error()})
	}

	logger.Stage(ctx, stageName, "embedded", map[string]interface{}{
		"transcript_id": transcriptID, "chunk_count": len(chunks), "provider": provider.GetModelName(),
	})

	return &EmbedResult{TranscriptID: transcriptID, ChunkCount: len(chunks), Provider: provider.GetModelName(), Reembedded: force}, nil
}

// embedChunkTexts embeds the first batch through the Chain to settle
// which provider answers for this session (§4.4 consistency rule), then
// fans the remaining batches out across the bounded worker pool against
// that same concrete provider (§5: independent external calls may run
// concurrently).
func (s *Service) embedChunkTexts(ctx context.Context, texts []string) ([][]float32, embedding.Embedder, error) {
	batchSize := s.embedBatchSize
	if batchSize <= 0 || batchSize > len(texts) {
		batchSize = len(texts)
	}

	first := texts[:batchSize]
	firstVecs, provider, err := s.embedder.BatchEmbed(ctx, first, false)
	if err != nil {
		return nil, nil, err
	}

	out := make([][]float32, len(texts))
	copy(out, firstVecs)

	rest := texts[batchSize:]
	if len(rest) == 0 {
		return out, provider, nil
	}

	restVecs, err := s.pool.RunBatches(ctx, rest, batchSize, provider.BatchEmbed)
	if err != nil {
		return nil, nil, err
	}
	copy(out[batchSize:], restVecs)
	return out, provider, nil
}

// SessionStatus implements session_status(transcript_id): whether the
// session is embedded, and if so, its marker.
func (s *Service) SessionStatus(ctx context.Context, transcriptID string) (*types.EmbeddedMarker, bool, error) {
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

// embedQuestion embeds the question using the provider consistent with
// the session's recorded dimensionality (§4.4: "chosen provider must be
// consistent across a session's chunks").
func (s *Service) embedQuestion(ctx context.Context, question string, marker *types.EmbeddedMarker) ([]float32, error) {
	useFallback := marker.Dimensions != 0 && s.embedder.Primary != nil && marker.Dimensions != s.embedder.Primary.GetDimensions()
	vecs, _, err := s.embedder.BatchEmbed(ctx, []string{question}, useFallback)
	if err != nil {
		return nil, apperrors.NewUpstreamError("embed question", err)
	}
	if len(vecs) == 0 {
		return nil, apperrors.NewUpstreamError("embed question: empty response", nil)
	}
	return vecs[0], nil
}
