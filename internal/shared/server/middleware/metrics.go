package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/shared/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, routeLabel(c), c.Writer.Status(), time.Since(start))
	}
}
