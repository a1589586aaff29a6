package availability

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/salonkit/booking/schedule"
)

// RedisDateCache is a DateCache shared across instances. Cache failures are
// logged and served as misses; the scan itself never depends on Redis being
// up.
type RedisDateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisDateCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisDateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisDateCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisDateCache) Get(ctx context.Context, key string) ([]schedule.Date, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("date cache get failed; treating as miss", "key", key, "err", err)
		return nil, false
	}
	var dates []schedule.Date
	if err := json.Unmarshal([]byte(val), &dates); err != nil {
		c.logger.Warn("date cache entry corrupt; treating as miss", "key", key, "err", err)
		return nil, false
	}
	return dates, true
}

func (c *RedisDateCache) Set(ctx context.Context, key string, dates []schedule.Date) {
	body, err := json.Marshal(dates)
	if err != nil {
		c.logger.Warn("date cache marshal failed", "key", key, "err", err)
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.Warn("date cache set failed", "key", key, "err", err)
	}
}
