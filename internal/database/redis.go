package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"change-ops-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects the shared redis client. The service degrades to
// cache-less operation when this fails, so callers may treat the error as
// non-fatal.
func InitRedis(cfg *config.Config, log *zap.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("addr", addr), zap.Int("db", cfg.Redis.DB))
	return nil
}

// GetRedis returns the shared client, nil when redis is unavailable
func GetRedis() *redis.Client {
	return redisClient
}
