package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every route handler the router wires together.
type Handlers struct {
	Ingest  *IngestHandler
	Moments *MomentsHandler
	Video   *VideoHandler
	Chat    *ChatHandler
	Health  *HealthHandler
}

// NewRouter builds the gin engine with the full route table of §6, CORS
// open on every route, and the shared error/request-id middleware.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.Health.GetHealth)

	router.POST("/api/ingest/hansard", h.Ingest.IngestHansard)
	router.GET("/transcripts/:id", h.Ingest.GetTranscript)

	router.POST("/api/moments/extract", h.Moments.Extract)
	router.POST("/api/moments/analyze", h.Moments.Analyze)
	router.POST("/api/moments/batch", h.Moments.Batch)
	router.GET("/api/moments/search", h.Moments.Search)

	router.POST("/api/video/match", h.Video.Match)
	router.GET("/api/video/match/:transcript_id", h.Video.GetMatch)
	router.POST("/api/video/find-timestamp", h.Video.FindTimestamp)

	router.POST("/embed-session", h.Chat.EmbedSession)
	router.GET("/session/:date/status", h.Chat.SessionStatus)
	router.POST("/chat", h.Chat.Chat)
	router.POST("/chat-stream", h.Chat.ChatStream)
	router.POST("/bulk-embed", h.Chat.BulkEmbed)

	return router
}
