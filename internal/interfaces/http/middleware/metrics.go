package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"signals-hub.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latencies. The route
// template is used as the path label so path parameters do not explode
// the label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
