// Package object defines a pluggable object store abstraction with two
// concrete backends (MinIO, Tencent COS), selected by configuration,
// both honouring the object-store key layout of §6.
package object

import (
	"context"
	"io"
)

// Store is the backend-agnostic object store surface every pipeline
// writes raw hansards, processed transcripts, moments, and video
// matches through.
type Store interface {
	// Put writes body under key, overwriting any existing value
	// (write-exclusive per key: last write wins).
	Put(ctx context.Context, key string, body []byte, contentType string) (uri string, err error)
	// Get reads the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether key has a value, without reading it.
	Exists(ctx context.Context, key string) (bool, error)
}

// Reader is satisfied by both backend SDKs' object readers.
type Reader interface {
	io.ReadCloser
}

// Key layout helpers, centralizing §6's object store layout.
func RawHansardKey(yyyy, mm, dd, transcriptID string) string {
	return "transcripts/raw/" + yyyy + "/" + mm + "/" + dd + "/" + transcriptID + ".json"
}

func ProcessedKey(transcriptID string) string {
	return "transcripts/processed/" + transcriptID + ".json"
}

func MomentsKey(transcriptID string) string {
	return "moments/" + transcriptID + ".json"
}

func VideoMatchKey(transcriptID string) string {
	return "video-matches/" + transcriptID + ".json"
}
