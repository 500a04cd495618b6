package moments

import (
	"context"
	"sort"

	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/store/keyword"
	"github.com/sghansard/hansardkb/internal/store/vector"
)

const (
	vectorWeight  = 0.7
	keywordWeight = 0.3
)

// SearchHit is one result of GET /api/moments/search: the hybrid score
// blends the vector index's similarity with the keyword index's BM25
// score, each normalized to [0,1] before weighting (SPEC_FULL's
// "hybrid moment search" supplement).
type SearchHit struct {
	MomentID     string  `json:"moment_id"`
	TranscriptID string  `json:"transcript_id"`
	Speaker      string  `json:"speaker"`
	Topic        string  `json:"topic"`
	Quote        string  `json:"quote"`
	Score        float64 `json:"score"`
}

// Search blends dense (qdrant) and sparse (elasticsearch) retrieval
// over moment quotes and topics: final score = 0.7*vector + 0.3*keyword.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	vectorHits := s.vectorSearch(ctx, query, limit*2)
	keywordHits := s.keywordSearch(ctx, query, limit*2)

	normVector := normalizeVector(vectorHits)
	normKeyword := normalizeKeyword(keywordHits)

	combined := make(map[string]*SearchHit, len(normVector)+len(normKeyword))
	for id, v := range normVector {
		hit := vectorHitByID(vectorHits, id)
		combined[id] = &SearchHit{
			MomentID: id, TranscriptID: hit.TranscriptID, Speaker: hit.Speaker,
			Topic: hit.Topic, Quote: hit.Quote, Score: v * vectorWeight,
		}
	}
	for id, k := range normKeyword {
		if existing, ok := combined[id]; ok {
			existing.Score += k * keywordWeight
			continue
		}
		combined[id] = &SearchHit{MomentID: id, Score: k * keywordWeight}
	}

	out := make([]SearchHit, 0, len(combined))
	for _, hit := range combined {
		out = append(out, *hit)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) vectorSearch(ctx context.Context, query string, limit int) []vector.MomentMatch {
	if s.index == nil {
		return nil
	}
	vecs, _, err := s.embedder.BatchEmbed(ctx, []string{query}, false)
	if err != nil || len(vecs) == 0 {
		logger.StageWarn(ctx, stageName, "search_embed_failed", map[string]interface{}{"error": errString(err)})
		return nil
	}
	hits, err := s.index.Search(ctx, vecs[0], uint64(limit))
	if err != nil {
		logger.StageWarn(ctx, stageName, "vector_search_failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return hits
}

func (s *Service) keywordSearch(ctx context.Context, query string, limit int) []keyword.MomentMatch {
	if s.keyword == nil {
		return nil
	}
	hits, err := s.keyword.Search(ctx, query, "", limit)
	if err != nil {
		logger.StageWarn(ctx, stageName, "keyword_search_failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return hits
}

func normalizeVector(hits []vector.MomentMatch) map[string]float64 {
	out := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return out
	}
	maxScore := hits[0].SimilarityScore
	for _, h := range hits {
		if h.SimilarityScore > maxScore {
			maxScore = h.SimilarityScore
		}
	}
	for _, h := range hits {
		if maxScore > 0 {
			out[h.MomentID] = h.SimilarityScore / maxScore
		} else {
			out[h.MomentID] = 0
		}
	}
	return out
}

func normalizeKeyword(hits []keyword.MomentMatch) map[string]float64 {
	out := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return out
	}
	maxScore := hits[0].Score
	for _, h := range hits {
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}
	for _, h := range hits {
		if maxScore > 0 {
			out[h.MomentID] = h.Score / maxScore
		} else {
			out[h.MomentID] = 0
		}
	}
	return out
}

func vectorHitByID(hits []vector.MomentMatch, id string) vector.MomentMatch {
	for _, h := range hits {
		if h.MomentID == id {
			return h
		}
	}
	return vector.MomentMatch{}
}
