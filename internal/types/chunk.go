package types

// Chunk is a contiguous slice of a Processed Transcript used for RAG
// retrieval.
type Chunk struct {
	ChunkID         string    `json:"chunk_id"`
	TranscriptID    string    `json:"transcript_id"`
	ChunkIndex      int       `json:"chunk_index"`
	Text            string    `json:"text"`
	Speaker         string    `json:"speaker,omitempty"`
	SectionTitle    string    `json:"section_title,omitempty"`
	SubsectionTitle string    `json:"subsection_title,omitempty"`
	WordCount       int       `json:"word_count"`
	Embedding       []float32 `json:"embedding,omitempty"`
}

// Citation is a per-answer reference to a retrieved chunk.
type Citation struct {
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Section    string  `json:"section,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ChatAnswer is the response of the chat operation.
type ChatAnswer struct {
	Answer     string     `json:"answer"`
	Citations  []Citation `json:"citations"`
	ModelUsed  string     `json:"model_used,omitempty"`
	Failed     bool       `json:"failed,omitempty"`
}

// EmbeddedMarker is the KV value recorded once a session's chunks have
// been upserted into the vector index.
type EmbeddedMarker struct {
	ChunkCount int       `json:"chunk_count"`
	EmbeddedAt string    `json:"embedded_at"`
	Provider   string    `json:"provider"`
	Dimensions int       `json:"dimensions"`
}
