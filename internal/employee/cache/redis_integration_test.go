//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hrcore/pkg/platform/sentinel"
	"hrcore/pkg/testutil/containers"
)

// RedisCacheSuite runs the department cache against a real Redis.
//
// Justification: TTL and key deletion semantics are Redis behaviour the
// in-memory fake cannot prove.
type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *Redis
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()

	_, err := s.cache.Get(ctx)
	s.ErrorIs(err, sentinel.ErrCacheMiss)

	s.Require().NoError(s.cache.Set(ctx, []string{"Engineering", "Operations"}))
	got, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Engineering", "Operations"}, got)

	ttl, err := s.redis.Client.TTL(ctx, DepartmentsKey).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(s.cache.Invalidate(ctx))
	_, err = s.cache.Get(ctx)
	s.ErrorIs(err, sentinel.ErrCacheMiss)
}
