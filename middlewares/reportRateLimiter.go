package middlewares

import (
	"net/http"
	"time"

	"communitypulse-be/config"

	"github.com/gin-gonic/gin"
)

// ReportRateLimiter caps how many reports one client may submit per day.
// Submission is public, so the counter is keyed by client IP.
func ReportRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client address missing"})
			c.Abort()
			return
		}

		ctx := config.Ctx
		clientKey := config.ReportLimitQueue + ":" + clientIP

		// Increment the client's count with TTL
		count, err := config.RedisClient.Incr(ctx, clientKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			err = config.RedisClient.Expire(ctx, clientKey, 24*time.Hour).Err()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		// Check if the client exceeded the daily limit
		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, clientKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
