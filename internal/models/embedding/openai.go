package embedding

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// OpenAIEmbedder is the primary embedding provider (§4.4: platform-native
// embedder, 768-dim by configuration).
type OpenAIEmbedder struct {
	client     *goopenai.Client
	modelName  string
	modelID    string
	dimensions int
}

func NewOpenAIEmbedder(apiKey, baseURL, modelName, modelID string, dimensions int) *OpenAIEmbedder {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client:     goopenai.NewClientWithConfig(cfg),
		modelName:  modelName,
		modelID:    modelID,
		dimensions: dimensions,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, apperrors.NewUpstreamError("openai embedding: empty response", nil)
	}
	return vecs[0], nil
}

// BatchEmbed requests embeddings for any number of texts, sending them
// in requests of at most 100 texts each, per the §4.4 batching rule.
func (e *OpenAIEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	const maxBatch = 100
	var out [][]float32
	for start := 0; start < len(texts); start += maxBatch {
		end := start + maxBatch
		if end > len(texts) {
			end = len(texts)
		}
		resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequestStrings{
			Input: texts[start:end],
			Model: goopenai.EmbeddingModel(e.modelName),
		})
		if err != nil {
			return nil, apperrors.NewUpstreamError("openai embedding request", err)
		}
		for _, d := range resp.Data {
			out = append(out, d.Embedding)
		}
	}
	return out, nil
}

func (e *OpenAIEmbedder) GetModelName() string { return e.modelName }
func (e *OpenAIEmbedder) GetDimensions() int    { return e.dimensions }
func (e *OpenAIEmbedder) GetModelID() string    { return e.modelID }
