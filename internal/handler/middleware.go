package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
)

// ErrorHandler renders the last error attached to the gin context via
// c.Error(...) as a JSON body with the status fixed by its Kind. Handlers
// never write error responses themselves; they call c.Error and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperrors.As(err)

		logger.Errorf(c.Request.Context(), "request failed: kind=%s message=%s", appErr.Kind, appErr.Message)

		body := gin.H{
			"error": appErr.Message,
			"kind":  appErr.Kind,
		}
		if appErr.Kind == apperrors.KindRateLimit && appErr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
			body["retry_after_seconds"] = appErr.RetryAfter
		}

		c.JSON(appErr.HTTPStatus(), body)
	}
}

// RequestID attaches an incoming or generated request id to the context
// so every log line in the request's lifetime can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = generateRequestID()
		}
		ctx := logger.WithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
