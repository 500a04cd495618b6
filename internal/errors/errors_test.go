package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindNotReady, http.StatusNotFound},
		{KindUpstream, http.StatusBadGateway},
		{KindRateLimit, http.StatusTooManyRequests},
		{KindMalformedSource, http.StatusUnprocessableEntity},
		{KindConfiguration, http.StatusInternalServerError},
		{KindStoreError, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := New(tt.kind, "boom")
			assert.Equal(t, tt.want, e.HTTPStatus())
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		e := New(KindBadRequest, "missing field")
		assert.Equal(t, "bad_request: missing field", e.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("dial tcp: timeout")
		e := Wrap(KindUpstream, "fetch hansard", cause)
		assert.Contains(t, e.Error(), "upstream: fetch hansard")
		assert.Contains(t, e.Error(), "dial tcp: timeout")
		assert.ErrorIs(t, e, cause)
	})
}

func TestAs(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, As(nil))
	})

	t.Run("already an AppError is returned unchanged", func(t *testing.T) {
		original := NewNotFoundError("transcript missing")
		got := As(original)
		require.Same(t, original, got)
	})

	t.Run("unclassified error is wrapped as internal", func(t *testing.T) {
		got := As(errors.New("some plain error"))
		require.NotNil(t, got)
		assert.Equal(t, KindInternal, got.Kind)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus())
	})
}
