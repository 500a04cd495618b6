package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMatchHandlerMissingRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	h := NewVideoHandler(nil, nil)
	r.POST("/api/video/match", h.Match)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/match", strings.NewReader(`{"transcript_id":"t1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindTimestampHandlerMissingQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	h := NewVideoHandler(nil, nil)
	r.POST("/api/video/find-timestamp", h.FindTimestamp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/find-timestamp", strings.NewReader(`{"transcript_id":"t1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
