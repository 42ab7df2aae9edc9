package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"

	maxInboundRequestIDLen = 64
)

// RequestIDFromContext returns the request ID assigned to c, or an empty
// string when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	requestID, _ := c.Get(requestIDContextKey)
	s, _ := requestID.(string)
	return s
}

// RequestID assigns every request an ID (reusing a sane inbound
// X-Request-ID when present), echoes it in the response header, and
// writes one key=value log line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeaderName))
		if requestID == "" {
			requestID = newRequestID()
		} else if len(requestID) > maxInboundRequestIDLen {
			requestID = requestID[:maxInboundRequestIDLen]
		}

		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeaderName, requestID)

		c.Next()

		path := c.FullPath()
		if path == "" {
			// Unmatched routes have no route pattern.
			path = c.Request.URL.Path
		}
		log.Printf(
			"request_id=%s method=%s path=%s status=%d latency_ms=%.2f client_ip=%s",
			requestID,
			c.Request.Method,
			path,
			c.Writer.Status(),
			float64(time.Since(startedAt).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}

func newRequestID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UTC().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b[:])
}
