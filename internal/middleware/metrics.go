package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/metrics"
)

// Metrics records request counts, latency and in-flight requests. It skips
// /metrics and the health endpoints.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if m == nil || route == "/metrics" || route == "/healthz" || route == "/readyz" {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		m.HTTPInFlight.Inc()
		defer m.HTTPInFlight.Dec()

		start := time.Now()
		c.Next()

		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
