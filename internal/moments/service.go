package moments

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/sghansard/hansardkb/internal/analytics"
	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/models/embedding"
	"github.com/sghansard/hansardkb/internal/store/keyword"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/store/object"
	"github.com/sghansard/hansardkb/internal/store/vector"
	"github.com/sghansard/hansardkb/internal/tracing"
	"github.com/sghansard/hansardkb/internal/types"
)

const stageName = "moments"

const (
	defaultMinScore   = 5.0
	defaultMaxResults = 20
	hardMaxResults    = 50
)

// Service implements the extract(...) contract of §4.2.
type Service struct {
	chatModel  chat.Chat
	embedder   *embedding.Chain
	index      *vector.MomentIndex
	keyword    *keyword.Index
	cache      *kv.Store
	objects    object.Store
	ingestion  *ingestion.Service
	analytics  *analytics.Store
	cacheTTL   time.Duration
	embedMoments bool
}

func NewService(
	chatModel chat.Chat,
	embedder *embedding.Chain,
	index *vector.MomentIndex,
	kwIndex *keyword.Index,
	cache *kv.Store,
	objects object.Store,
	ingest *ingestion.Service,
	analyticsStore *analytics.Store,
	cacheTTL time.Duration,
	embedMoments bool,
) *Service {
	return &Service{
		chatModel:    chatModel,
		embedder:     embedder,
		index:        index,
		keyword:      kwIndex,
		cache:        cache,
		objects:      objects,
		ingestion:    ingest,
		analytics:    analyticsStore,
		cacheTTL:     cacheTTL,
		embedMoments: embedMoments,
	}
}

// Extract implements extract(transcript_id, criteria?).
func (s *Service) Extract(ctx context.Context, transcriptID string, criteria types.MomentCriteria) (*types.ExtractionResult, error) {
	criteria = normalizeCriteria(criteria)

	transcript, err := s.ingestion.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}

	llmCtx, llmSpan := tracing.StartSpan(ctx, stageName, "llm-call")
	candidates, err := proposeCandidates(llmCtx, s.chatModel, transcript)
	llmSpan.End()
	if err != nil {
		return nil, err
	}

	moments := make([]types.Moment, 0, len(candidates))
	for _, candidate := range candidates {
		moments = append(moments, buildMoment(transcriptID, candidate, transcript))
	}

	sortMoments(moments, candidates)
	moments = filterMoments(moments, criteria)

	if s.embedMoments {
		s.embedMomentsInPlace(ctx, moments)
	}

	result := &types.ExtractionResult{
		TranscriptID: transcriptID,
		Moments:      moments,
		Stats:        computeStats(moments),
		ProcessedAt:  time.Now().UTC(),
		ModelID:      s.chatModel.GetModelID(),
	}
	if len(moments) > 0 {
		top := moments[0]
		result.TopMoment = &top
	}

	if err := s.persistAndIndex(ctx, transcriptID, result); err != nil {
		return nil, err
	}

	s.recordAnalytics(ctx, transcriptID, moments)

	return result, nil
}

func normalizeCriteria(c types.MomentCriteria) types.MomentCriteria {
	if c.MinScore == 0 {
		c.MinScore = defaultMinScore
	}
	if c.MaxResults == 0 {
		c.MaxResults = defaultMaxResults
	}
	if c.MaxResults > hardMaxResults {
		c.MaxResults = hardMaxResults
	}
	return c
}

func filterMoments(moments []types.Moment, criteria types.MomentCriteria) []types.Moment {
	out := make([]types.Moment, 0, len(moments))
	for _, m := range moments {
		if m.FinalScore < criteria.MinScore {
			continue
		}
		if len(criteria.TopicAllow) > 0 && !contains(criteria.TopicAllow, m.Topic) {
			continue
		}
		if len(criteria.SpeakerAllow) > 0 && !contains(criteria.SpeakerAllow, m.Speaker) {
			continue
		}
		out = append(out, m)
	}
	if len(out) > criteria.MaxResults {
		out = out[:criteria.MaxResults]
	}
	return out
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// sortMoments orders by descending final score with the §4.2 tie-break:
// higher ai_score, then earlier first segment_index, then shorter quote.
// candidates is matched to moments by quote text; sortMoments runs on
// the full moments slice, before filterMoments.
func sortMoments(moments []types.Moment, candidates []types.MomentCandidate) {
	aiScoreByQuote := make(map[string]float64, len(candidates))
	firstIndexByQuote := make(map[string]int, len(candidates))
	for _, c := range candidates {
		aiScoreByQuote[c.Quote] = c.AIScore
		if len(c.SegmentIndices) > 0 {
			firstIndexByQuote[c.Quote] = c.SegmentIndices[0]
		}
	}

	sort.SliceStable(moments, func(i, j int) bool {
		a, b := moments[i], moments[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if aiScoreByQuote[a.Quote] != aiScoreByQuote[b.Quote] {
			return aiScoreByQuote[a.Quote] > aiScoreByQuote[b.Quote]
		}
		if firstIndexByQuote[a.Quote] != firstIndexByQuote[b.Quote] {
			return firstIndexByQuote[a.Quote] < firstIndexByQuote[b.Quote]
		}
		return len(a.Quote) < len(b.Quote)
	})
}

// embedMomentsInPlace requests an embedding per surviving moment. A
// provider-unavailable failure degrades the moment (empty embedding)
// rather than dropping it (§4.2).
func (s *Service) embedMomentsInPlace(ctx context.Context, moments []types.Moment) {
	for i := range moments {
		vecs, _, err := s.embedder.BatchEmbed(ctx, []string{moments[i].Quote}, false)
		if err != nil || len(vecs) == 0 {
			logger.StageWarn(ctx, stageName, "embed_failed", map[string]interface{}{
				"moment_id": moments[i].MomentID, "error": errString(err),
			})
			continue
		}
		moments[i].Embedding = vecs[0]
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// persistAndIndex saves the extraction artifact to the object store and
// caches it, then upserts embedded moments into the vector and keyword
// indexes. Embedding/index failures are logged, not fatal, once the
// JSON artifact is written (§4.2 failure semantics).
func (s *Service) persistAndIndex(ctx context.Context, transcriptID string, result *types.ExtractionResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return apperrors.NewInternalError("marshal extraction result", err)
	}
	if _, err := s.objects.Put(ctx, object.MomentsKey(transcriptID), body, "application/json"); err != nil {
		return err
	}

	if err := s.cache.Set(ctx, kv.MomentsKey(transcriptID), result, s.cacheTTL); err != nil {
		logger.StageWarn(ctx, stageName, "cache_write_failed", map[string]interface{}{"error": err.Error()})
	}

	if s.index != nil {
		vectors := make([]vector.MomentVector, 0, len(result.Moments))
		for _, m := range result.Moments {
			vectors = append(vectors, vector.MomentVector{
				MomentID:     m.MomentID,
				TranscriptID: m.TranscriptID,
				Speaker:      m.Speaker,
				Topic:        m.Topic,
				Score:        m.FinalScore,
				Quote:        m.Quote,
				Embedding:    m.Embedding,
			})
		}
		if err := s.index.Upsert(ctx, vectors); err != nil {
			logger.StageWarn(ctx, stageName, "vector_upsert_failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.keyword != nil {
		for _, m := range result.Moments {
			doc := keyword.MomentDoc{
				MomentID: m.MomentID, TranscriptID: m.TranscriptID,
				Speaker: m.Speaker, Topic: m.Topic, Quote: m.Quote, Score: m.FinalScore,
			}
			if err := s.keyword.Index(ctx, doc); err != nil {
				logger.StageWarn(ctx, stageName, "keyword_index_failed", map[string]interface{}{
					"moment_id": m.MomentID, "error": err.Error(),
				})
			}
		}
	}

	return nil
}

func (s *Service) recordAnalytics(ctx context.Context, transcriptID string, moments []types.Moment) {
	if s.analytics == nil {
		return
	}
	stats := make([]analytics.MomentStat, 0, len(moments))
	now := time.Now().UTC()
	for _, m := range moments {
		stats = append(stats, analytics.MomentStat{
			TranscriptID: transcriptID, Topic: m.Topic, Speaker: m.Speaker,
			Tone: m.EmotionalTone, Score: m.FinalScore, CreatedAt: now,
		})
	}
	if err := s.analytics.RecordMoments(ctx, stats); err != nil {
		logger.StageWarn(ctx, stageName, "analytics_write_failed", map[string]interface{}{"error": err.Error()})
	}
}

func computeStats(moments []types.Moment) types.MomentStats {
	stats := types.MomentStats{
		CountByTopic:   map[string]int{},
		CountBySpeaker: map[string]int{},
		CountByTone:    map[string]int{},
	}
	var total float64
	for _, m := range moments {
		stats.CountByTopic[m.Topic]++
		stats.CountBySpeaker[m.Speaker]++
		stats.CountByTone[m.EmotionalTone]++
		total += m.FinalScore
	}
	if len(moments) > 0 {
		stats.MeanScore = total / float64(len(moments))
	}
	return stats
}
