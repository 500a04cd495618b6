package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newMomentsTestRouter(h *MomentsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/api/moments/analyze", h.Analyze)
	r.POST("/api/moments/batch", h.Batch)
	r.GET("/api/moments/search", h.Search)
	return r
}

func TestAnalyzeHandlerScoresQuote(t *testing.T) {
	h := NewMomentsHandler(nil, nil)
	r := newMomentsTestRouter(h)

	body := `{"quote":"We will not rule it out, we are considering alternatives.","topic":"housing","emotional_tone":"defensive","ai_score":6}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/moments/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "final_score")
}

func TestBatchHandlerRejectsEmptyTranscriptIDs(t *testing.T) {
	h := NewMomentsHandler(nil, nil)
	r := newMomentsTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/moments/batch", strings.NewReader(`{"transcript_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandlerRequiresQuery(t *testing.T) {
	h := NewMomentsHandler(nil, nil)
	r := newMomentsTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/moments/search", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
