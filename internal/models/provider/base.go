// Package provider implements the pluggable LLM/embedding provider
// registry of §4.4: a small set of named backends, each describing its
// own defaults and validating its own configuration before a chat or
// embedding client is constructed from it.
package provider

import "fmt"

// Name identifies a registered provider.
type Name string

const (
	OpenAI Name = "openai"
	Ollama Name = "ollama"
)

// Capability marks what a provider can be used for.
type Capability string

const (
	CapabilityChat      Capability = "chat"
	CapabilityEmbedding Capability = "embedding"
)

// ProviderInfo describes a registered provider's static metadata.
type ProviderInfo struct {
	Name         Name
	DisplayName  string
	DefaultURL   string
	Capabilities []Capability
	RequiresAuth bool
}

// Config carries the per-deployment settings needed to construct a
// client for a provider: base URL, credential, and the model to use
// for each capability.
type Config struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	ModelID    string
	Dimensions int
}

// Provider validates its own configuration before a client is built
// from it; concrete chat/embedding constructors live in the chat and
// embedding packages and take a *Config directly.
type Provider interface {
	Info() ProviderInfo
	ValidateConfig(config *Config) error
}

var registry = map[Name]Provider{}

func Register(p Provider) {
	registry[p.Info().Name] = p
}

func Get(name Name) (Provider, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model provider %q", name)
	}
	return p, nil
}

// List returns every registered provider's metadata, unsorted: the
// order is map iteration order and can differ between calls.
func List() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(registry))
	for _, p := range registry {
		infos = append(infos, p.Info())
	}
	return infos
}

// DetectProvider infers a provider name from a base URL when the
// deployment config doesn't set one explicitly: an empty URL or
// OpenAIBaseURL selects OpenAI, and any other URL selects Ollama.
func DetectProvider(baseURL string) Name {
	switch {
	case baseURL == "" || baseURL == OpenAIBaseURL:
		return OpenAI
	default:
		return Ollama
	}
}
