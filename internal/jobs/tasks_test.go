package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMomentsBatchTask(t *testing.T) {
	task, err := NewMomentsBatchTask(MomentsBatchPayload{
		TranscriptID: "t1",
		MinScore:     5,
		MaxResults:   20,
		TopicAllow:   []string{"housing"},
	})
	require.NoError(t, err)
	assert.Equal(t, TypeMomentsBatch, task.Type())

	var decoded MomentsBatchPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "t1", decoded.TranscriptID)
	assert.Equal(t, []string{"housing"}, decoded.TopicAllow)
}

func TestNewBulkEmbedTask(t *testing.T) {
	task, err := NewBulkEmbedTask(BulkEmbedPayload{TranscriptID: "t2", Force: true})
	require.NoError(t, err)
	assert.Equal(t, TypeBulkEmbed, task.Type())

	var decoded BulkEmbedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "t2", decoded.TranscriptID)
	assert.True(t, decoded.Force)
}
