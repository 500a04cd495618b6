package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
	assert.Equal(t, 24*time.Hour, cfg.Cache.RawHansardTTL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.ChatPrimaryModel)
	assert.Equal(t, "llama3.1", cfg.LLM.ChatFallbackModel)
	assert.True(t, cfg.Embed.EmbedMoments)
	assert.Equal(t, 2, cfg.Video.WindowBeforeDays)
	assert.Equal(t, 3, cfg.Video.WindowAfterDays)
	assert.Equal(t, 500, cfg.RAG.Chunk.MaxTokens)
	assert.Equal(t, "minio", cfg.Store.ObjectBackend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadExplicitMissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.yaml")
	require.Error(t, err)
}
