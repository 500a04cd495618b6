package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/jobs"
	"github.com/sghansard/hansardkb/internal/moments"
	"github.com/sghansard/hansardkb/internal/types"
)

// MomentsHandler serves the moment extractor's HTTP surface (§6).
type MomentsHandler struct {
	service  *moments.Service
	enqueuer *jobs.Enqueuer
}

func NewMomentsHandler(service *moments.Service, enqueuer *jobs.Enqueuer) *MomentsHandler {
	return &MomentsHandler{service: service, enqueuer: enqueuer}
}

// ExtractRequest is the input to POST /api/moments/extract.
type ExtractRequest struct {
	TranscriptID string               `json:"transcript_id" binding:"required"`
	Criteria     types.MomentCriteria `json:"criteria,omitempty"`
}

// Extract godoc
// @Summary      Extract notable moments from a transcript
// @Tags         moments
// @Accept       json
// @Produce      json
// @Param        request  body      ExtractRequest  true  "Extraction input"
// @Success      200      {object}  types.ExtractionResult
// @Router       /api/moments/extract [post]
func (h *MomentsHandler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.service.Extract(ctx, req.TranscriptID, req.Criteria)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analyze godoc
// @Summary      Score a single quote with the deterministic rescore formula
// @Tags         moments
// @Accept       json
// @Produce      json
// @Param        request  body      moments.AnalyzeRequest  true  "Quote to score"
// @Success      200      {object}  moments.AnalyzeResult
// @Router       /api/moments/analyze [post]
func (h *MomentsHandler) Analyze(c *gin.Context) {
	var req moments.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, moments.Analyze(req))
}

// BatchRequest is the input to POST /api/moments/batch.
type BatchRequest struct {
	TranscriptIDs []string             `json:"transcript_ids" binding:"required"`
	Criteria      types.MomentCriteria `json:"criteria,omitempty"`
}

// Batch godoc
// @Summary      Queue moment extraction for many transcripts
// @Tags         moments
// @Accept       json
// @Produce      json
// @Param        request  body      BatchRequest  true  "Batch input"
// @Success      202      {array}   jobs.ItemStatus
// @Router       /api/moments/batch [post]
func (h *MomentsHandler) Batch(c *gin.Context) {
	ctx := c.Request.Context()

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}
	if len(req.TranscriptIDs) == 0 {
		c.Error(apperrors.NewBadRequestError("transcript_ids must not be empty"))
		return
	}

	statuses, err := h.enqueuer.EnqueueMomentsBatch(ctx, req.Criteria, req.TranscriptIDs)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, statuses)
}

// Search godoc
// @Summary      Hybrid vector+keyword search over extracted moments
// @Tags         moments
// @Produce      json
// @Param        q      query     string  true   "Search query"
// @Param        limit  query     int     false  "Max results"
// @Success      200    {array}   moments.SearchHit
// @Router       /api/moments/search [get]
func (h *MomentsHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	if query == "" {
		c.Error(apperrors.NewBadRequestError("q is required"))
		return
	}
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	hits, err := h.service.Search(ctx, query, limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, hits)
}
