package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/namuve/frontdesk/internal/shared/metrics"
)

// Metrics records request counts and latency by route template. Unmatched
// routes are grouped under "unmatched" to keep label cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
