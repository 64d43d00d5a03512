package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	dom "github.com/rvega1204/job-manager/internal/domain"
)

const keyListPrefix = "jobs:list:"

// JobCache caches per-owner job lists in Redis.
type JobCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewJobCache returns a new JobCache.
func NewJobCache(rdb *redis.Client, ttl time.Duration) *JobCache {
	return &JobCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for an owner, or nil on miss.
func (c *JobCache) GetList(ctx context.Context, ownerID string) ([]dom.Job, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+ownerID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Job
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores an owner's list in cache.
func (c *JobCache) SetList(ctx context.Context, ownerID string, list []dom.Job) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+ownerID, b, c.ttl).Err()
}

// Invalidate drops an owner's cached list (called on every write).
func (c *JobCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.rdb.Del(ctx, keyListPrefix+ownerID).Err()
}
