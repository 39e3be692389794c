package middleware

import (
	"time"

	"points-ledger/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template.
func Metrics(m *metrics.LedgerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
