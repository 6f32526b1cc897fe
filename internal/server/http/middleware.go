package http

import (
	"time"

	"github.com/gin-gonic/gin"
)

// accessLog logs one line per request. Request bodies and headers are
// never logged: they carry passwords and tokens.
func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			s.logger.Error(c.Request.Context(), "request failed", append(args, "errors", c.Errors.String())...)
			return
		}
		s.logger.Info(c.Request.Context(), "request completed", args...)
	}
}
