// Package kv wraps go-redis to implement the cache keyspace of §6: raw
// hansard, processed transcripts, moments, video matches, and the RAG
// embedding-readiness marker.
package kv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
)

// Store is a thin JSON-marshaling cache over a redis client. All writes
// are advisory: callers must not treat a Set failure as fatal outside
// the ingest path (see §7 propagation policy).
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get unmarshals the value stored at key into dest. It returns
// (false, nil) on a cache miss, and on a JSON parse error it deletes
// the corrupt entry and reports a miss, per the ingest caching rule
// that any read-time decode failure self-heals by deleting the entry.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewStoreError("kv get "+key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnf(ctx, "kv: corrupt cache entry at %s, deleting: %v", key, err)
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Set marshals value and writes it with the given TTL. A TTL of zero
// means no expiry (used for the embedding-readiness marker).
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewInternalError("marshal cache value for "+key, err)
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return apperrors.NewStoreError("kv set "+key, err)
	}
	return nil
}

// Delete removes a key; deleting a cache entry must never lose data, it
// only forces recomputation downstream.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.NewStoreError("kv delete "+key, err)
	}
	return nil
}

// Keyspace helpers centralize the key layout of §6 so no pipeline
// hand-formats a cache key independently.
func RawHansardKey(isoDate string) string        { return "hansard:raw:" + isoDate }
func ProcessedKey(transcriptID string) string     { return "transcript:processed:" + transcriptID }
func MomentsKey(transcriptID string) string       { return "moments:" + transcriptID }
func VideoMatchKey(transcriptID string) string    { return "video_match:" + transcriptID }
func EmbeddedKey(transcriptID string) string      { return "embedded:" + transcriptID }
