package auth

import (
	"fmt"
	"net/http"
	"time"

	"socialnet/backend/internal/cache"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles authenticated endpoints per user through
// Redis. A nil *cache.RedisClient disables limiting, so deployments without
// Redis still work.
type RateLimitMiddleware struct {
	redis *cache.RedisClient
}

func NewRateLimitMiddleware(redis *cache.RedisClient) *RateLimitMiddleware {
	return &RateLimitMiddleware{redis: redis}
}

// PerUser limits each user to the given number of requests per window on the
// route it wraps. Runs after AuthMiddleware.
func (rm *RateLimitMiddleware) PerUser(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rm.redis == nil {
			c.Next()
			return
		}

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		key := fmt.Sprintf("rate_limit:%v:%s", userID, c.Request.URL.Path)
		allowed, err := rm.redis.CheckRateLimit(c.Request.Context(), key, requests, window)
		if err != nil {
			// Redis being down should not take the API down with it.
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PerIP limits unauthenticated routes by client address.
func (rm *RateLimitMiddleware) PerIP(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rm.redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.Request.URL.Path)
		allowed, err := rm.redis.CheckRateLimit(c.Request.Context(), key, requests, window)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
