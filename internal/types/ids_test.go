package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSittingDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2026-03-05", "2026-03-05", false},
		{"05-03-2026", "2026-03-05", false},
		{"5-3-2026", "", true},
		{"2026/03/05", "", true},
		{"not-a-date", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := CanonicalSittingDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTranscriptID(t *testing.T) {
	t.Run("with parliament and session", func(t *testing.T) {
		id := BuildTranscriptID("2026-03-05", 14, 2)
		assert.Equal(t, "2026-03-05-p14-s2", id)
	})

	t.Run("missing parliament number falls back to sitting-1", func(t *testing.T) {
		id := BuildTranscriptID("2026-03-05", 0, 2)
		assert.Equal(t, "2026-03-05-sitting-1", id)
	})

	t.Run("missing session number falls back to sitting-1", func(t *testing.T) {
		id := BuildTranscriptID("2026-03-05", 14, 0)
		assert.Equal(t, "2026-03-05-sitting-1", id)
	})
}
