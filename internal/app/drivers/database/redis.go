package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when Redis is disabled; callers fall back to process-local caches.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	if !driverConfig.Redis.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
		DB:       driverConfig.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	return rdb
}
