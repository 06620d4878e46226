package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"change-ops-api/internal/dto"
)

const (
	dashboardKey = "change-ops:dashboard-stats"
	dashboardTTL = 30 * time.Second
)

// RedisStatsCache caches the dashboard aggregate in redis with a short TTL
type RedisStatsCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStatsCache creates a redis-backed stats cache. Returns nil when
// no redis client is available so callers can run without caching.
func NewRedisStatsCache(client *redis.Client, logger *zap.Logger) *RedisStatsCache {
	if client == nil {
		return nil
	}
	return &RedisStatsCache{client: client, logger: logger}
}

// GetDashboard returns the cached snapshot, (nil, nil) on a miss
func (c *RedisStatsCache) GetDashboard(ctx context.Context) (*dto.DashboardStats, error) {
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		// Corrupt entry, treat as a miss
		c.logger.Warn("Discarding unreadable dashboard cache entry", zap.Error(err))
		return nil, nil
	}
	return &stats, nil
}

// SetDashboard stores a snapshot with the cache TTL
func (c *RedisStatsCache) SetDashboard(ctx context.Context, stats *dto.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, data, dashboardTTL).Err()
}
