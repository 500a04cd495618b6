package provider

import "fmt"

const OpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider is the platform-native chat and embedding backend.
type OpenAIProvider struct{}

func init() {
	Register(&OpenAIProvider{})
}

func (p *OpenAIProvider) Info() ProviderInfo {
	return ProviderInfo{
		Name:         OpenAI,
		DisplayName:  "OpenAI",
		DefaultURL:   OpenAIBaseURL,
		Capabilities: []Capability{CapabilityChat, CapabilityEmbedding},
		RequiresAuth: true,
	}
}

func (p *OpenAIProvider) ValidateConfig(config *Config) error {
	if config.APIKey == "" {
		return fmt.Errorf("API key is required for openai provider")
	}
	if config.ModelName == "" {
		return fmt.Errorf("model name is required for openai provider")
	}
	return nil
}
