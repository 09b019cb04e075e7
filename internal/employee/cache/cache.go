// Package cache holds the department directory read-through cache.
package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"hrcore/pkg/platform/sentinel"
)

// DepartmentCache stores the list of known department names.
// Get returns sentinel.ErrCacheMiss when nothing is cached.
type DepartmentCache interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, departments []string) error
	Invalidate(ctx context.Context) error
}

// InMemory is a process-local DepartmentCache with TTL expiry.
type InMemory struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	values    []string
	expiresAt time.Time
	cached    bool
}

func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{ttl: ttl, now: time.Now}
}

func (c *InMemory) Get(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached || (c.ttl > 0 && !c.now().Before(c.expiresAt)) {
		return nil, sentinel.ErrCacheMiss
	}
	return slices.Clone(c.values), nil
}

func (c *InMemory) Set(_ context.Context, departments []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = slices.Clone(departments)
	c.cached = true
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *InMemory) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = nil
	c.cached = false
	return nil
}

var _ DepartmentCache = (*InMemory)(nil)
