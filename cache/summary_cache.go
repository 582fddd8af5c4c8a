package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "summary:"

// SummaryCache caches serialized daily-summary payloads in Redis, keyed by
// user and date range.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached payload, or nil on miss.
func (c *SummaryCache) Get(ctx context.Context, userID uint, from, to string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, c.key(userID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *SummaryCache) Set(ctx context.Context, userID uint, from, to string, payload []byte) error {
	return c.rdb.Set(ctx, c.key(userID, from, to), payload, c.ttl).Err()
}

// InvalidateUser drops every cached range for the user.
func (c *SummaryCache) InvalidateUser(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("%s%d:*", summaryKeyPrefix, userID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *SummaryCache) key(userID uint, from, to string) string {
	return fmt.Sprintf("%s%d:%s:%s", summaryKeyPrefix, userID, from, to)
}
