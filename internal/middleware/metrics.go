package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records request latency per matched route.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
