package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campusmind/internal/model"
)

// StatsCache handles Redis operations for per-tenant assessment stats
type StatsCache interface {
	Get(ctx context.Context, collegeID string) (*model.TenantStats, error)
	Set(ctx context.Context, stats *model.TenantStats) error
	Invalidate(ctx context.Context, collegeID string) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *statsCache) key(collegeID string) string {
	return fmt.Sprintf("college:%s:assessment_stats", collegeID)
}

func (c *statsCache) Get(ctx context.Context, collegeID string) (*model.TenantStats, error) {
	data, err := c.client.Get(ctx, c.key(collegeID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.TenantStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) Set(ctx context.Context, stats *model.TenantStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(stats.CollegeID), data, c.ttl).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, collegeID string) error {
	return c.client.Del(ctx, c.key(collegeID)).Err()
}
