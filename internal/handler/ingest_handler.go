package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/types"
)

// IngestHandler serves the ingestion pipeline's HTTP surface (§6:
// /api/ingest/hansard, /transcripts/:id).
type IngestHandler struct {
	service *ingestion.Service
}

func NewIngestHandler(service *ingestion.Service) *IngestHandler {
	return &IngestHandler{service: service}
}

// IngestRequest accepts exactly one of the three input forms the
// ingest(...) contract defines (§4.1).
type IngestRequest struct {
	SittingDate  string             `json:"sitting_date,omitempty"`
	RawURL       string             `json:"raw_url,omitempty"`
	RawHansard   *types.RawHansard  `json:"raw_hansard,omitempty"`
	TranscriptID string             `json:"transcript_id,omitempty"`
	SkipStore    bool               `json:"skip_store,omitempty"`
	ForceRefresh bool               `json:"force_refresh,omitempty"`
}

// IngestHansard godoc
// @Summary      Ingest a Hansard sitting
// @Description  Fetch, parse, and persist a Parliament sitting by date, URL, or inline JSON
// @Tags         ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      IngestRequest  true  "Ingest input"
// @Success      200      {object}  types.IngestResult
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /api/ingest/hansard [post]
func (h *IngestHandler) IngestHansard(c *gin.Context) {
	ctx := c.Request.Context()

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	logger.Stage(ctx, "ingestion", "request_received", map[string]interface{}{
		"has_sitting_date": req.SittingDate != "", "has_raw_url": req.RawURL != "", "has_raw_hansard": req.RawHansard != nil,
	})

	result, err := h.service.Ingest(ctx, ingestion.Request{
		SittingDate:  req.SittingDate,
		RawHansard:   req.RawHansard,
		RawURL:       req.RawURL,
		TranscriptID: req.TranscriptID,
		SkipStore:    req.SkipStore,
		ForceRefresh: req.ForceRefresh,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTranscript godoc
// @Summary      Fetch a processed transcript
// @Tags         ingestion
// @Produce      json
// @Param        id   path      string  true  "Transcript id"
// @Success      200  {object}  types.ProcessedTranscript
// @Failure      404  {object}  map[string]interface{}
// @Router       /transcripts/{id} [get]
func (h *IngestHandler) GetTranscript(c *gin.Context) {
	ctx := c.Request.Context()
	transcriptID := c.Param("id")

	transcript, err := h.service.GetTranscript(ctx, transcriptID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, transcript)
}
