package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging writes one line per request. Server errors are logged at error
// level, everything else at debug.
func Logging(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote", c.ClientIP(),
			"status", status,
			"duration_ms", float64(dur.Microseconds()) / 1000.0,
			"size", c.Writer.Size(),
			"request_id", GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		if status >= 500 {
			logger.Errorw("http request", fields...)
			return
		}
		logger.Debugw("http request", fields...)
	}
}
