// Package embedding implements the embedding provider chain of §4.4: a
// primary platform embedder tried first, falling back to a secondary
// provider on failure, with provider-consistent batching.
package embedding

import "context"

// Embedder converts text to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
	GetModelName() string
	GetDimensions() int
	GetModelID() string
}

// Config configures a concrete embedder instance.
type Config struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	ModelID    string
	Dimensions int
}

// Chain tries the primary embedder first and falls back to the
// secondary on failure. The returned Embedder records which provider
// actually produced the vectors, so callers can enforce the "chosen
// provider must be consistent across a session's chunks" rule.
type Chain struct {
	Primary  Embedder
	Fallback Embedder
}

func (c *Chain) BatchEmbed(ctx context.Context, texts []string, forceFallback bool) ([][]float32, Embedder, error) {
	primary := c.Primary
	if forceFallback {
		primary = nil
	}

	if primary != nil {
		vecs, err := primary.BatchEmbed(ctx, texts)
		if err == nil {
			return vecs, primary, nil
		}
	}
	if c.Fallback == nil {
		return nil, nil, errNoEmbedderConfigured
	}
	vecs, err := c.Fallback.BatchEmbed(ctx, texts)
	if err != nil {
		return nil, nil, err
	}
	return vecs, c.Fallback, nil
}

type configError struct{ msg string }

func (e *configError) Error() string { return e.msg }

var errNoEmbedderConfigured = &configError{"no embedding provider configured"}
