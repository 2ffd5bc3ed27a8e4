package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/uptask/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and count per route template, so /projects/:projectId
// is one series no matter how many projects exist.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		labels := []string{c.Request.Method, routeLabel(c), strconv.Itoa(c.Writer.Status())}
		metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
	}
}

// routeLabel collapses every unmatched path into one label value.
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
