package api

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// securityHeaders sets standard security response headers on every response.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

var correlationSeq uint32

// newCorrelationID mints a YYYYMMDD_<unix-seconds>_<4-digit-seq> id
// (spec.md §4.7): sortable by day, unique enough per-process via the
// wrapping sequence counter without needing a shared clock or store.
func newCorrelationID() string {
	now := time.Now().UTC()
	seq := atomic.AddUint32(&correlationSeq, 1) % 10000
	return fmt.Sprintf("%s_%d_%04d", now.Format("20060102"), now.Unix(), seq)
}

// correlationID reuses an inbound X-Correlation-ID if present, otherwise
// mints a fresh one, and echoes it back on the response for client-side
// log correlation (spec.md §4.7).
func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = newCorrelationID()
		}
		c.Set("correlationID", id)
		c.Writer.Header().Set("X-Correlation-ID", id)
		c.Next()
	}
}

// correlationIDFromContext returns the request's correlation id set by the
// correlationID middleware, so it can be threaded into response envelopes
// and into the loggers of whatever that request kicks off (spec.md §8's
// correlation-propagation invariant).
func correlationIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("correlationID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
