package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusKeyNamespacesDoNotCollide(t *testing.T) {
	transcriptID := "2026-03-05-p14-s2"
	assert.NotEqual(t, momentsBatchStatusKey(transcriptID), bulkEmbedStatusKey(transcriptID))
	assert.Contains(t, momentsBatchStatusKey(transcriptID), transcriptID)
	assert.Contains(t, bulkEmbedStatusKey(transcriptID), transcriptID)
}
