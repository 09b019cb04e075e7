package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcore/pkg/platform/sentinel"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)
	c := NewInMemory(10 * time.Minute)
	c.now = func() time.Time { return now }

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, sentinel.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, []string{"Engineering", "HR"}))
	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "HR"}, got)

	got[0] = "mutated"
	again, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", again[0])

	t.Run("empty list is a hit", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, nil))
		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, []string{"HR"}))
		now = now.Add(10 * time.Minute)
		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, sentinel.ErrCacheMiss)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, []string{"HR"}))
		require.NoError(t, c.Invalidate(ctx))
		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, sentinel.ErrCacheMiss)
	})
}
