package chat

import (
	"context"
	"net/url"

	ollamaapi "github.com/ollama/ollama/api"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// OllamaChat is the self-hosted fallback answer-generation backend.
type OllamaChat struct {
	client    *ollamaapi.Client
	modelName string
	modelID   string
}

func NewOllamaChat(baseURL, modelName, modelID string) (*OllamaChat, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid ollama base url: " + err.Error())
	}
	return &OllamaChat{
		client:    ollamaapi.NewClient(u, nil),
		modelName: modelName,
		modelID:   modelID,
	}, nil
}

func (c *OllamaChat) convert(messages []Message) []ollamaapi.Message {
	out := make([]ollamaapi.Message, len(messages))
	for i, m := range messages {
		out[i] = ollamaapi.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func (c *OllamaChat) request(messages []Message, opts *ChatOptions, stream bool) *ollamaapi.ChatRequest {
	req := &ollamaapi.ChatRequest{
		Model:    c.modelName,
		Messages: c.convert(messages),
		Stream:   &stream,
		Options:  map[string]interface{}{},
	}
	if opts != nil {
		if opts.Temperature > 0 {
			req.Options["temperature"] = opts.Temperature
		}
		if opts.TopP > 0 {
			req.Options["top_p"] = opts.TopP
		}
		if opts.MaxTokens > 0 {
			req.Options["num_predict"] = opts.MaxTokens
		}
	}
	return req
}

func (c *OllamaChat) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
	req := c.request(messages, opts, false)

	var content string
	var promptTokens, completionTokens int
	err := c.client.Chat(ctx, req, func(resp ollamaapi.ChatResponse) error {
		content = resp.Message.Content
		if resp.EvalCount > 0 {
			promptTokens = resp.PromptEvalCount
			completionTokens = resp.EvalCount
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError("ollama chat completion", err)
	}
	return &ChatResponse{
		Content:          content,
		ModelUsed:        c.modelID,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	}, nil
}

func (c *OllamaChat) ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamChunk, error) {
	req := c.request(messages, opts, true)

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		err := c.client.Chat(ctx, req, func(resp ollamaapi.ChatResponse) error {
			if resp.Message.Content != "" {
				select {
				case out <- StreamChunk{Content: resp.Message.Content}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if resp.Done {
				out <- StreamChunk{Done: true}
			}
			return nil
		})
		if err != nil {
			out <- StreamChunk{Done: true, Err: apperrors.NewUpstreamError("ollama chat stream", err)}
		}
	}()
	return out, nil
}

func (c *OllamaChat) GetModelName() string { return c.modelName }
func (c *OllamaChat) GetModelID() string   { return c.modelID }
