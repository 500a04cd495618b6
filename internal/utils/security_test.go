package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	t.Run("plain text unchanged", func(t *testing.T) {
		assert.Equal(t, "Mr Speaker, I rise today.", SanitizeHTML("Mr Speaker, I rise today."))
	})

	t.Run("script tag escaped", func(t *testing.T) {
		got := SanitizeHTML("<script>alert(1)</script>")
		assert.NotContains(t, got, "<script>")
	})

	t.Run("inline event handler escaped", func(t *testing.T) {
		got := SanitizeHTML(`<img src=x onerror="alert(1)">`)
		assert.NotContains(t, got, `onerror="alert(1)"`)
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", SanitizeHTML(""))
	})
}

func TestSanitizeForLog(t *testing.T) {
	t.Run("strips newlines and tabs", func(t *testing.T) {
		assert.Equal(t, "line one line two", SanitizeForLog("line one\nline two"))
		assert.Equal(t, "a b", SanitizeForLog("a\tb"))
	})

	t.Run("strips control characters", func(t *testing.T) {
		got := SanitizeForLog("before\x00after")
		assert.NotContains(t, got, "\x00")
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", SanitizeForLog(""))
	})
}
