package embedding

import (
	"context"
	"net/url"

	ollamaapi "github.com/ollama/ollama/api"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// OllamaEmbedder is the secondary/fallback embedding provider (§4.4:
// 1536-dim by configuration) used when the primary is unavailable.
type OllamaEmbedder struct {
	client     *ollamaapi.Client
	modelName  string
	modelID    string
	dimensions int
}

func NewOllamaEmbedder(baseURL, modelName, modelID string, dimensions int) (*OllamaEmbedder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid ollama base url: " + err.Error())
	}
	return &OllamaEmbedder{
		client:     ollamaapi.NewClient(u, nil),
		modelName:  modelName,
		modelID:    modelID,
		dimensions: dimensions,
	}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, apperrors.NewUpstreamError("ollama embedding: empty response", nil)
	}
	return vecs[0], nil
}

func (e *OllamaEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.Embed(ctx, &ollamaapi.EmbedRequest{
		Model: e.modelName,
		Input: texts,
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError("ollama embedding request", err)
	}
	out := make([][]float32, len(resp.Embeddings))
	for i, v := range resp.Embeddings {
		out[i] = v
	}
	return out, nil
}

func (e *OllamaEmbedder) GetModelName() string { return e.modelName }
func (e *OllamaEmbedder) GetDimensions() int    { return e.dimensions }
func (e *OllamaEmbedder) GetModelID() string    { return e.modelID }
