package middlewares

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"jansahay-be/config"

	"github.com/gin-gonic/gin"
)

const defaultReportLimit = 5

// ReportRateLimiter caps how many issues a user may report per 24 hours,
// tracked in Redis with an INCR+EXPIRE counter per user. The limit is
// tunable via REPORTS_PER_DAY.
func ReportRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		limit := defaultReportLimit
		if v, err := strconv.Atoi(os.Getenv("REPORTS_PER_DAY")); err == nil && v > 0 {
			limit = v
		}

		ctx := config.Ctx
		userKey := "report_limit:" + userID

		count, err := config.RedisClient.Incr(ctx, userKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// TTL starts with the first report of the window
		if count == 1 {
			if err := config.RedisClient.Expire(ctx, userKey, 24*time.Hour).Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "report limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
