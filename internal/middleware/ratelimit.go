package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookitlabs/bookit-server/internal/ratelimit"
)

// LoginRateLimit rejects callers over the login budget before the handler
// ever sees the credentials.
func LoginRateLimit(limiter *ratelimit.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Check(c.Request.Context(), c.ClientIP())
		if !res.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limited",
				"retry_after": res.RetryAfter,
			})
			return
		}
		c.Next()
	}
}
