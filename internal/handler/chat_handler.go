package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/jobs"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/rag"
)

// ChatHandler serves the RAG chat pipeline's HTTP surface (§6).
type ChatHandler struct {
	service  *rag.Service
	enqueuer *jobs.Enqueuer
}

func NewChatHandler(service *rag.Service, enqueuer *jobs.Enqueuer) *ChatHandler {
	return &ChatHandler{service: service, enqueuer: enqueuer}
}

// EmbedSessionRequest is the input to POST /embed-session.
type EmbedSessionRequest struct {
	TranscriptID string `json:"transcript_id" binding:"required"`
	Force        bool   `json:"force,omitempty"`
}

// EmbedSession godoc
// @Summary      Chunk and embed a transcript for retrieval
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      EmbedSessionRequest  true  "Embed input"
// @Success      200      {object}  rag.EmbedResult
// @Router       /embed-session [post]
func (h *ChatHandler) EmbedSession(c *gin.Context) {
	ctx := c.Request.Context()

	var req EmbedSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.service.EmbedSession(ctx, req.TranscriptID, req.Force)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SessionStatus godoc
// @Summary      Check whether a transcript has been embedded
// @Tags         chat
// @Produce      json
// @Param        date  path      string  true  "Transcript id or sitting date"
// @Success      200   {object}  types.EmbeddedMarker
// @Router       /session/{date}/status [get]
func (h *ChatHandler) SessionStatus(c *gin.Context) {
	ctx := c.Request.Context()
	transcriptID := c.Param("date")

	marker, embedded, err := h.service.SessionStatus(ctx, transcriptID)
	if err != nil {
		c.Error(err)
		return
	}
	if !embedded {
		c.JSON(http.StatusOK, gin.H{"transcript_id": transcriptID, "embedded": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcript_id": transcriptID, "embedded": true, "marker": marker})
}

// ChatRequest is the input to POST /chat and POST /chat-stream.
type ChatRequest struct {
	TranscriptID string `json:"transcript_id" binding:"required"`
	Question     string `json:"question" binding:"required"`
	MaxResults   int    `json:"max_results,omitempty"`
}

// Chat godoc
// @Summary      Answer a question about a transcript using retrieved context
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "Chat input"
// @Success      200      {object}  types.ChatAnswer
// @Failure      404      {object}  map[string]interface{}
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	answer, err := h.service.Chat(ctx, rag.ChatRequest{
		TranscriptID: req.TranscriptID,
		Question:     req.Question,
		MaxResults:   req.MaxResults,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// ChatStream godoc
// @Summary      Answer a question about a transcript, streaming the answer
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  ChatRequest  true  "Chat input"
// @Router       /chat-stream [post]
func (h *ChatHandler) ChatStream(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.service.ChatStream(ctx, rag.ChatRequest{
		TranscriptID: req.TranscriptID,
		Question:     req.Question,
		MaxResults:   req.MaxResults,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Model-Used", result.ModelUsed)
	c.Header("X-Citations-Count", strconv.Itoa(len(result.Citations)))

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Error(apperrors.NewInternalError("streaming not supported by response writer", nil))
		return
	}

	defer rag.DrainOnCancel(ctx, result.Fragments)

	for fragment := range result.Fragments {
		if fragment.Err != nil {
			logger.StageError(ctx, "chat", "stream_fragment_error", map[string]interface{}{"error": fragment.Err.Error()})
			fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", fragment.Err.Error())
			flusher.Flush()
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", fragment.Content)
		flusher.Flush()
		if fragment.Done {
			break
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// BulkEmbedRequest is the input to POST /bulk-embed.
type BulkEmbedRequest struct {
	TranscriptIDs []string `json:"transcript_ids" binding:"required"`
	Force         bool     `json:"force,omitempty"`
}

// BulkEmbed godoc
// @Summary      Queue embedding for many transcripts
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      BulkEmbedRequest  true  "Bulk embed input"
// @Success      202      {array}   jobs.ItemStatus
// @Router       /bulk-embed [post]
func (h *ChatHandler) BulkEmbed(c *gin.Context) {
	ctx := c.Request.Context()

	var req BulkEmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequestError(err.Error()))
		return
	}
	if len(req.TranscriptIDs) == 0 {
		c.Error(apperrors.NewBadRequestError("transcript_ids must not be empty"))
		return
	}

	statuses, err := h.enqueuer.EnqueueBulkEmbed(ctx, req.TranscriptIDs, req.Force)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, statuses)
}
