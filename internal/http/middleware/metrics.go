package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// APIMetrics is the part of the metrics collector that records requests.
type APIMetrics interface {
	ObserveAPI(method, route, status string, d time.Duration)
	ApiInflightInc()
	ApiInflightDec()
}

// Metrics records request counts and latency keyed by the matched route, so
// path parameters never explode label cardinality.
func Metrics(m APIMetrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
