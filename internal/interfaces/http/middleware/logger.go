package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"storefront.backend/pkg/logger"
)

// LoggerMiddleware writes one access log line per request. It must run after
// RequestIDMiddleware so the line carries the request id.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.LogRequest(c.Request.Context(), logger.RequestLog{
			Method:   c.Request.Method,
			Path:     path,
			Route:    c.FullPath(),
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
			Errors:   c.Errors.ByType(gin.ErrorTypePrivate).String(),
		})
	}
}
