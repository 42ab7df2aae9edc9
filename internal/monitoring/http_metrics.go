package monitoring

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	activeHTTPRequests atomic.Int64
	totalHTTPRequests  atomic.Uint64
	totalHTTPErrors    atomic.Uint64
)

// RequestMetricsMiddleware tracks basic HTTP request counters.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeHTTPRequests.Add(1)
		totalHTTPRequests.Add(1)
		defer activeHTTPRequests.Add(-1)

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			totalHTTPErrors.Add(1)
		}
	}
}

func getHTTPStats() (active int64, total uint64, errors uint64) {
	return activeHTTPRequests.Load(), totalHTTPRequests.Load(), totalHTTPErrors.Load()
}
