package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/videomatch"
)

// VideoHandler serves the video matcher's HTTP surface (§6).
type VideoHandler struct {
	service   *videomatch.Service
	ingestion *ingestion.Service
}

func NewVideoHandler(service *videomatch.Service, ingest *ingestion.Service) *VideoHandler {
	return &VideoHandler{service: service, ingestion: ingest}
}

// MatchRequest is the input to POST /api/video/match.
type MatchRequest struct {
	TranscriptID string   `json:"transcript_id" binding:"required"`
	SittingDate  string   `json:"sitting_date" binding:"required"`
	Speakers     []string `json:"speakers,omitempty"`
	Channel      string   `json:"channel,omitempty"`
}

// Match godoc
// @Summary      Find the best-matching video for a transcript
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        request  body      MatchRequest  true  "Match input"
// @Success      200      {object}  types.VideoMatch
// @Failure      404      {object}  map[string]interface{}
// @Failure      429      {object}  map[string]interface{}
// @Router       /api/video/match [post]
func (h *VideoHandler) Match(c *gin.Context) {
	ctx := c.Request.Context()

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	match, err := h.service.Match(ctx, videomatch.Request{
		TranscriptID: req.TranscriptID,
		SittingDate:  req.SittingDate,
		Speakers:     req.Speakers,
		Channel:      req.Channel,
	})
	if err == videomatch.ErrNoMatch {
		c.JSON(http.StatusOK, gin.H{"transcript_id": req.TranscriptID, "matched": false})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetMatch godoc
// @Summary      Read the cached video match for a transcript
// @Tags         video
// @Produce      json
// @Param        transcript_id  path      string  true  "Transcript id"
// @Success      200            {object}  types.VideoMatch
// @Failure      404            {object}  map[string]interface{}
// @Router       /api/video/match/{transcript_id} [get]
func (h *VideoHandler) GetMatch(c *gin.Context) {
	ctx := c.Request.Context()
	transcriptID := c.Param("transcript_id")

	match, err := h.service.GetMatch(ctx, transcriptID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// FindTimestampRequest is the input to POST /api/video/find-timestamp.
type FindTimestampRequest struct {
	TranscriptID string `json:"transcript_id" binding:"required"`
	Quote        string `json:"quote" binding:"required"`
}

// FindTimestamp godoc
// @Summary      Locate a quote within its matched video
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        request  body      FindTimestampRequest  true  "Lookup input"
// @Success      200      {object}  videomatch.TimestampResult
// @Router       /api/video/find-timestamp [post]
func (h *VideoHandler) FindTimestamp(c *gin.Context) {
	ctx := c.Request.Context()

	var req FindTimestampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.service.FindTimestamp(ctx, h.ingestion, req.TranscriptID, req.Quote)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
