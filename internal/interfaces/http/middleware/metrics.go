package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"storefront.backend/pkg/metrics"
)

// MetricsMiddleware records request counts, latency and in-flight requests.
// Requests are labelled with the route template, not the raw path.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.IncInFlight()
		defer done()

		c.Next()

		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
