// Package redis connects the optional Redis backend and exports its pool statistics.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"hrcore/internal/platform/config"
)

// pingTimeout bounds the connectivity check made by New.
const pingTimeout = 3 * time.Second

var (
	poolConns = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hr_redis_pool_conns",
		Help: "Redis pool connections by state",
	}, []string{"state"})
	poolEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_redis_pool_events_total",
		Help: "Redis pool lookups by outcome",
	}, []string{"outcome"})
)

// Client is a go-redis client that remembers the last pool snapshot it exported.
type Client struct {
	*redis.Client
	last redis.PoolStats
}

// New connects to cfg.URL and pings it. An empty URL returns a nil client.
func New(ctx context.Context, cfg config.Redis) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // init failed
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats exports the current pool gauges and the growth of the pool counters.
func (c *Client) RecordPoolStats() {
	stats := c.PoolStats()
	poolConns.WithLabelValues("total").Set(float64(stats.TotalConns))
	poolConns.WithLabelValues("idle").Set(float64(stats.IdleConns))
	poolConns.WithLabelValues("stale").Set(float64(stats.StaleConns))

	poolEvents.WithLabelValues("hit").Add(growth(stats.Hits, c.last.Hits))
	poolEvents.WithLabelValues("miss").Add(growth(stats.Misses, c.last.Misses))
	poolEvents.WithLabelValues("timeout").Add(growth(stats.Timeouts, c.last.Timeouts))
	c.last = *stats
}

// growth is the non-negative difference between two counter readings.
func growth(current, previous uint32) float64 {
	if current <= previous {
		return 0
	}
	return float64(current - previous)
}
