package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisStore "points-ledger/internal/adapter/storage/redis"
	"points-ledger/pkg/apperror"
	"points-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitStore counts requests per key and window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Store errors let the request through.
func RateLimiter(store RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		// Always set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier determines the rate limit key source: the calling
// service's X-Client-ID, else the client IP.
func extractIdentifier(c *gin.Context) string {
	if id := c.GetHeader(HeaderClientID); id != "" && len(id) <= maxRequestIDLength {
		return id
	}
	return c.ClientIP()
}
