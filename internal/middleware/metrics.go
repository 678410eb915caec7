package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/form-builder/internal/service"
)

// Metrics records per-route request counts and latency. The scrape endpoint
// itself is not observed.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		// Prefer the route template so path params don't explode cardinality.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
