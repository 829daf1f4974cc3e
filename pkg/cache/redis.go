package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis and verifies the connection with a ping.
// Callers treat an error as "redis disabled" rather than fatal.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, err
	}

	return redisClient, nil
}
