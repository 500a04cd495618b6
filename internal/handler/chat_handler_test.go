package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestChatHandlerMissingQuestion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	h := NewChatHandler(nil, nil)
	r.POST("/chat", h.Chat)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"transcript_id":"t1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkEmbedHandlerRejectsEmptyTranscriptIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	h := NewChatHandler(nil, nil)
	r.POST("/bulk-embed", h.BulkEmbed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bulk-embed", strings.NewReader(`{"transcript_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
