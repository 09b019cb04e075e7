package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hrcore/pkg/platform/sentinel"
)

// DepartmentsKey is the Redis key holding the JSON department list.
const DepartmentsKey = "hr:departments"

// Redis persists the department list in Redis with TTL-based eviction.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed department cache.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context) ([]string, error) {
	data, err := c.client.Get(ctx, DepartmentsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrCacheMiss
		}
		return nil, fmt.Errorf("get departments cache: %w", err)
	}
	var departments []string
	if err := json.Unmarshal(data, &departments); err != nil {
		return nil, fmt.Errorf("decode departments cache: %w", err)
	}
	return departments, nil
}

func (c *Redis) Set(ctx context.Context, departments []string) error {
	if departments == nil {
		departments = []string{}
	}
	payload, err := json.Marshal(departments)
	if err != nil {
		return fmt.Errorf("encode departments cache: %w", err)
	}
	if err := c.client.Set(ctx, DepartmentsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save departments cache: %w", err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, DepartmentsKey).Err(); err != nil {
		return fmt.Errorf("invalidate departments cache: %w", err)
	}
	return nil
}

var _ DepartmentCache = (*Redis)(nil)
