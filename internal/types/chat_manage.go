package types

// EventType names one stage of the RAG chat pipeline.
type EventType string

const (
	EventRetrieve      EventType = "retrieve"
	EventAssembleCtx   EventType = "assemble_context"
	EventGenerate      EventType = "generate"
	EventGenerateStream EventType = "generate_stream"
)

// Pipline defines the ordered stage sequence for each chat mode, the same
// role the teacher's event-pipeline map plays for its RAG flows.
var Pipline = map[string][]EventType{
	"chat": {
		EventRetrieve,
		EventAssembleCtx,
		EventGenerate,
	},
	"chat_stream": {
		EventRetrieve,
		EventAssembleCtx,
		EventGenerateStream,
	},
}

// ChatManage carries the mutable state threaded through one chat
// pipeline run: the question, the retrieved chunks, and the assembled
// answer. A fresh ChatManage is created per request; nothing survives
// past it.
type ChatManage struct {
	SessionID    string
	TranscriptID string
	Question     string
	MaxResults   int

	RetrievedChunks []ScoredChunk
	ContextBlock    string
	Citations       []Citation

	ModelUsed string
	Answer    string
}

// ScoredChunk pairs a retrieved Chunk with its similarity score against
// the question embedding.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Clone returns a shallow copy suitable for passing into a pipeline stage
// without letting it mutate the caller's state by reference.
func (c *ChatManage) Clone() *ChatManage {
	clone := *c
	clone.RetrievedChunks = append([]ScoredChunk(nil), c.RetrievedChunks...)
	clone.Citations = append([]Citation(nil), c.Citations...)
	return &clone
}
