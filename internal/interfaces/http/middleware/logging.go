package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/utils"
)

// healthPaths are polled by orchestrators; successful hits are not logged.
var healthPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// CustomLogger writes one access line per request carrying the acting
// username and request id, so every store call logged below it can be
// correlated.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		if status < 400 && healthPaths[c.Request.URL.Path] {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
			"request_id", utils.GetRequestID(c),
			"username", utils.GetUsername(c),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Infow("request served", args...)
		}
	}
}
