package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"
	redisPkg "github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/redis"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyDashboardStats = "console:dashboard_stats:%s"

// StatsCache is a best-effort cache for the dashboard rollup. A cache
// failure is never surfaced to the caller; the store stays the source
// of truth.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*dto.AggregatedStats, bool)
	Set(ctx context.Context, userID string, stats *dto.AggregatedStats)
}

// NewRedisStatsCache creates a redis-backed stats cache with the given TTL.
func NewRedisStatsCache(client *redisPkg.Client, ttl time.Duration, logger *logger.Logger) StatsCache {
	return &redisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

type redisStatsCache struct {
	client *redisPkg.Client
	ttl    time.Duration
	logger *logger.Logger
}

func (c *redisStatsCache) Get(ctx context.Context, userID string) (*dto.AggregatedStats, bool) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(redisKeyDashboardStats, userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Stats cache read failed", logger.ErrorField(err), logger.Field("user_id", userID))
		}
		return nil, false
	}

	var stats dto.AggregatedStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		c.logger.Warn("Stats cache entry corrupt, ignoring", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, false
	}
	return &stats, true
}

func (c *redisStatsCache) Set(ctx context.Context, userID string, stats *dto.AggregatedStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("Failed to marshal stats for cache", logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, fmt.Sprintf(redisKeyDashboardStats, userID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Stats cache write failed", logger.ErrorField(err), logger.Field("user_id", userID))
	}
}
