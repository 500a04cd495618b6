package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

func TestParseRawHansardValid(t *testing.T) {
	body := []byte(`{
		"parliament_no": 14,
		"session_no": 2,
		"sitting_date": "05-03-2026",
		"display_date": "5 March 2026",
		"sections": [],
		"attendance": []
	}`)

	doc, err := ParseRawHansard(body)
	require.NoError(t, err)
	assert.Equal(t, 14, doc.ParliamentNo)
	assert.Equal(t, "05-03-2026", doc.SittingDate)
}

func TestParseRawHansardInvalidJSON(t *testing.T) {
	_, err := ParseRawHansard([]byte(`not json`))
	require.Error(t, err)
	ae := apperrors.As(err)
	assert.Equal(t, apperrors.KindMalformedSource, ae.Kind)
}

func TestParseRawHansardMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing parliament_no", `{"session_no":1,"sitting_date":"d","display_date":"d","sections":[],"attendance":[]}`},
		{"missing session_no", `{"parliament_no":1,"sitting_date":"d","display_date":"d","sections":[],"attendance":[]}`},
		{"missing sitting_date", `{"parliament_no":1,"session_no":1,"display_date":"d","sections":[],"attendance":[]}`},
		{"missing display_date", `{"parliament_no":1,"session_no":1,"sitting_date":"d","sections":[],"attendance":[]}`},
		{"missing sections", `{"parliament_no":1,"session_no":1,"sitting_date":"d","display_date":"d","attendance":[]}`},
		{"missing attendance", `{"parliament_no":1,"session_no":1,"sitting_date":"d","display_date":"d","sections":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRawHansard([]byte(tt.body))
			require.Error(t, err)
			ae := apperrors.As(err)
			assert.Equal(t, apperrors.KindMalformedSource, ae.Kind)
		})
	}
}
