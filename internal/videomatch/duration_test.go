package videomatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1H23M45S", 1*3600 + 23*60 + 45},
		{"PT45S", 45},
		{"PT23M", 23 * 60},
		{"PT1H", 3600},
		{"PT0S", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseISO8601Duration(tt.input))
		})
	}
}
