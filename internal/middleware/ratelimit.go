package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/metrics"
	"github.com/justsurfingit/job-application-tracker/internal/ratelimit"
)

// RateLimit rejects callers over the limiter's budget, keyed by client IP.
// Limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("Rate limiter unavailable, allowing request", "error", err, "path", c.FullPath())
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitRejections.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dtos.MessageResponse{Message: "Too many requests, try again later."})
			return
		}
		c.Next()
	}
}
