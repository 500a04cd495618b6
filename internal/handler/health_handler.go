package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Build metadata, set via -ldflags at compile time.
var (
	Version   = "unknown"
	CommitID  = "unknown"
	BuildTime = "unknown"
)

// HealthHandler serves /health.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// GetHealth godoc
// @Summary      Report service liveness and build info
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"version":    Version,
		"commit_id":  CommitID,
		"build_time": BuildTime,
	})
}
