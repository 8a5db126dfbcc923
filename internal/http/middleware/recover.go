package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnlens/internal/http/response"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

// Recover turns a handler panic into a 500 error envelope.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		if log != nil {
			log.Error("HTTP handler panic", "path", c.Request.URL.Path, "panic", rec, "stack", string(debug.Stack()))
		}
		response.RespondError(c, http.StatusInternalServerError, "internal_error", nil)
	})
}

// LimitBody caps request bodies; reads past the limit fail and surface as a
// bind error in the handler.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
