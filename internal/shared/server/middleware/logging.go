package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/shared/telemetry"
)

// DataSourceKey is the context key handlers set to "analyzer" or "fallback".
const DataSourceKey = "dataSource"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       routeLabel(c),
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"data_source": c.GetString(DataSourceKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		telemetry.Info("request.complete", fields)
	}
}

// routeLabel keeps label cardinality bounded for static and unmatched paths.
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
