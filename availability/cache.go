package availability

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/salonkit/booking/schedule"
)

// DateCache caches fully-booked-date scan results. The cache is owned and
// passed in by the caller with an explicit TTL and explicit keys; the engine
// holds no process-wide state. A nil DateCache disables caching.
type DateCache interface {
	Get(ctx context.Context, key string) ([]schedule.Date, bool)
	Set(ctx context.Context, key string, dates []schedule.Date)
}

// MonthKey builds the cache key for one pool scope and month.
func MonthKey(scope string, year int, month time.Month) string {
	return fmt.Sprintf("fully-booked:%s:%04d-%02d", scope, year, int(month))
}

// PoolScope derives a deterministic cache scope from a provider pool.
func PoolScope(providers []Provider) string {
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID.String())
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// LRUDateCache is an in-process DateCache on an expiring LRU. Suited to a
// single instance; multi-instance deployments share results via
// RedisDateCache instead.
type LRUDateCache struct {
	lru *expirable.LRU[string, []schedule.Date]
}

// NewLRUDateCache builds a cache holding up to size keys, each expiring
// after ttl.
func NewLRUDateCache(size int, ttl time.Duration) *LRUDateCache {
	return &LRUDateCache{lru: expirable.NewLRU[string, []schedule.Date](size, nil, ttl)}
}

func (c *LRUDateCache) Get(_ context.Context, key string) ([]schedule.Date, bool) {
	return c.lru.Get(key)
}

func (c *LRUDateCache) Set(_ context.Context, key string, dates []schedule.Date) {
	c.lru.Add(key, dates)
}
