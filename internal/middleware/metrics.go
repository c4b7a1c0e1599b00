package middleware

import (
	"strconv" // Status code formatting
	"time"    // Request timing

	"chainvora/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin" // Gin web framework
)

// Metrics records request count, latency and in-flight gauge per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next() // Do not measure the scrape itself
			return
		}
		metrics.HTTPInFlight.Inc()
		defer metrics.HTTPInFlight.Dec() // Runs even when a handler panics
		start := time.Now()
		c.Next()

		path := c.FullPath() // Route template keeps label cardinality bounded
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
