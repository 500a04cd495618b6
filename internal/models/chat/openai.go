package chat

import (
	"context"
	"io"

	goopenai "github.com/sashabaranov/go-openai"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// OpenAIChat is the primary answer-generation backend.
type OpenAIChat struct {
	client    *goopenai.Client
	modelName string
	modelID   string
}

func NewOpenAIChat(apiKey, baseURL, modelName, modelID string) *OpenAIChat {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIChat{
		client:    goopenai.NewClientWithConfig(cfg),
		modelName: modelName,
		modelID:   modelID,
	}
}

func (c *OpenAIChat) convert(messages []Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

func (c *OpenAIChat) request(messages []Message, opts *ChatOptions) goopenai.ChatCompletionRequest {
	req := goopenai.ChatCompletionRequest{
		Model:    c.modelName,
		Messages: c.convert(messages),
	}
	if opts != nil {
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		if opts.MaxTokens > 0 {
			req.MaxTokens = opts.MaxTokens
		}
	}
	return req
}

func (c *OpenAIChat) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(messages, opts))
	if err != nil {
		return nil, apperrors.NewUpstreamError("openai chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.NewUpstreamError("openai chat completion: no choices returned", nil)
	}
	return &ChatResponse{
		Content:          resp.Choices[0].Message.Content,
		ModelUsed:        c.modelID,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (c *OpenAIChat) ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamChunk, error) {
	req := c.request(messages, opts)
	req.Stream = true

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("openai chat stream", err)
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		defer stream.Close()
		for {
			resp, err := stream.Recv()
			if err == io.EOF {
				out <- StreamChunk{Done: true}
				return
			}
			if err != nil {
				out <- StreamChunk{Done: true, Err: apperrors.NewUpstreamError("openai chat stream recv", err)}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			content := resp.Choices[0].Delta.Content
			if content == "" {
				continue
			}
			select {
			case out <- StreamChunk{Content: content}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (c *OpenAIChat) GetModelName() string { return c.modelName }
func (c *OpenAIChat) GetModelID() string   { return c.modelID }
