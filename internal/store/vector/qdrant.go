// Package vector wraps qdrant-go-client to index and search Moment
// embeddings, the vector index referenced throughout §4.2 of the
// moment-extraction pipeline.
package vector

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// momentNamespace seeds the UUIDv5 derivation of a moment's qdrant
// point id, since qdrant requires the point's Uuid field to be a
// genuine UUID rather than an arbitrary string like "{transcript_id}-m-0".
var momentNamespace = uuid.MustParse("8f7f588e-7d2f-4f6f-9a1e-9a6f5f0c9b3a")

// pointID derives a deterministic UUIDv5 for a moment id so the same
// moment always upserts to the same qdrant point.
func pointID(momentID string) string {
	return uuid.NewSHA1(momentNamespace, []byte(momentID)).String()
}

// MomentVector is the payload attached to each point upserted into the
// moments collection.
type MomentVector struct {
	MomentID     string
	TranscriptID string
	Speaker      string
	Topic        string
	Score        float64
	Quote        string
	Embedding    []float32
}

// MomentMatch is one result of a moment similarity search.
type MomentMatch struct {
	MomentID     string
	TranscriptID string
	Speaker      string
	Topic        string
	Score        float64
	Quote        string
	SimilarityScore float64
}

// MomentIndex is a qdrant-backed vector index over moment embeddings.
type MomentIndex struct {
	client         *qdrant.Client
	collectionName string

	initOnce sync.Once
	initErr  error
}

// NewMomentIndex dials the qdrant endpoint. The collection is created
// lazily on first use, the same pattern the teacher's qdrant retriever
// follows with its initializedCollections cache.
func NewMomentIndex(addr, collectionName string) (*MomentIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{Host: addr})
	if err != nil {
		return nil, apperrors.NewStoreError("dial qdrant", err)
	}
	return &MomentIndex{client: client, collectionName: collectionName}, nil
}

func (m *MomentIndex) ensureCollection(ctx context.Context, dims uint64) error {
	m.initOnce.Do(func() {
		exists, err := m.client.CollectionExists(ctx, m.collectionName)
		if err != nil {
			m.initErr = err
			return
		}
		if exists {
			return
		}
		m.initErr = m.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: m.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     dims,
				Distance: qdrant.Distance_Cosine,
			}),
		})
	})
	return m.initErr
}

// Upsert writes moments with non-empty embeddings into the index,
// idempotent by moment id.
func (m *MomentIndex) Upsert(ctx context.Context, moments []MomentVector) error {
	points := make([]*qdrant.PointStruct, 0, len(moments))
	for _, mv := range moments {
		if len(mv.Embedding) == 0 {
			continue
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(mv.MomentID)),
			Vectors: qdrant.NewVectors(mv.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"moment_id":      mv.MomentID,
				"transcript_id":  mv.TranscriptID,
				"speaker":        mv.Speaker,
				"topic":          mv.Topic,
				"virality_score": mv.Score,
				"quote":          mv.Quote,
			}),
		})
	}
	if len(points) == 0 {
		return nil
	}
	if err := m.ensureCollection(ctx, uint64(len(points[0].Vectors.GetVector().Data))); err != nil {
		return apperrors.NewStoreError("ensure moments collection", err)
	}
	_, err := m.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: m.collectionName,
		Points:         points,
	})
	if err != nil {
		return apperrors.NewStoreError("upsert moment vectors", err)
	}
	return nil
}

// Search queries the moments collection by embedding, returning up to
// topK matches ordered by similarity.
func (m *MomentIndex) Search(ctx context.Context, embedding []float32, topK uint64) ([]MomentMatch, error) {
	resp, err := m.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: m.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          &topK,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, apperrors.NewStoreError("search moment vectors", err)
	}
	out := make([]MomentMatch, 0, len(resp))
	for _, p := range resp {
		payload := p.GetPayload()
		out = append(out, MomentMatch{
			MomentID:        payload["moment_id"].GetStringValue(),
			TranscriptID:    payload["transcript_id"].GetStringValue(),
			Speaker:         payload["speaker"].GetStringValue(),
			Topic:           payload["topic"].GetStringValue(),
			Score:           payload["virality_score"].GetDoubleValue(),
			Quote:           payload["quote"].GetStringValue(),
			SimilarityScore: float64(p.GetScore()),
		})
	}
	return out, nil
}
