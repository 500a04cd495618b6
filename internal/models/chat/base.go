// Package chat implements the answer-generation backends of §4.4: a
// small Chat interface with a streaming and non-streaming path,
// implemented once per wired provider (OpenAI, Ollama).
package chat

import "context"

// Message is one turn in a chat completion request.
type Message struct {
	Role    string
	Content string
}

// ChatOptions controls generation; zero values mean "use the
// provider's default".
type ChatOptions struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// ChatResponse is a completed, non-streaming answer.
type ChatResponse struct {
	Content          string
	ModelUsed        string
	PromptTokens     int
	CompletionTokens int
}

// StreamChunk is one increment of a streamed answer. Done is set on
// the final chunk (possibly with Err set instead of Content).
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// Chat generates answers from a fixed message history, either in one
// shot or incrementally over a channel.
type Chat interface {
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error)
	ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamChunk, error)
	GetModelName() string
	GetModelID() string
}
