package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimit allows limit requests per client IP and window, counted in redis
// under prefix. A nil client or a non-positive limit disables the check, and
// redis failures let the request through.
func RateLimit(client *redis.Client, prefix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "rate_limit:" + prefix + ":" + c.IP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limit check skipped")
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				// A counter without a TTL would lock the client out for good.
				log.Warn().Err(err).Str("key", key).Msg("rate limit expiry failed, counter dropped")
				if err := client.Del(ctx, key).Err(); err != nil {
					log.Error().Err(err).Str("key", key).Msg("rate limit counter left without expiry")
				}
				return c.Next()
			}
		}

		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}
}
