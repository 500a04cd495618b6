package provider

import "fmt"

const OllamaBaseURL = "http://localhost:11434"

// OllamaProvider is the self-hosted fallback chat and embedding
// backend, used when the primary platform provider is unavailable or
// unconfigured.
type OllamaProvider struct{}

func init() {
	Register(&OllamaProvider{})
}

func (p *OllamaProvider) Info() ProviderInfo {
	return ProviderInfo{
		Name:         Ollama,
		DisplayName:  "Ollama",
		DefaultURL:   OllamaBaseURL,
		Capabilities: []Capability{CapabilityChat, CapabilityEmbedding},
		RequiresAuth: false,
	}
}

func (p *OllamaProvider) ValidateConfig(config *Config) error {
	if config.BaseURL == "" {
		return fmt.Errorf("base URL is required for ollama provider")
	}
	if config.ModelName == "" {
		return fmt.Errorf("model name is required for ollama provider")
	}
	return nil
}
