package cache

import (
	"context"
	"errors"
	"log/slog"

	"hrcore/pkg/platform/circuit"
	"hrcore/pkg/platform/sentinel"
)

// Resilient fronts a shared cache with a process-local fallback. The fallback is
// written on every Set so it is warm when the breaker opens; while open, reads
// are served from it and primary errors are swallowed.
type Resilient struct {
	primary  DepartmentCache
	fallback DepartmentCache
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewResilient(primary, fallback DepartmentCache, breaker *circuit.Breaker, logger *slog.Logger) *Resilient {
	if breaker == nil {
		breaker = circuit.New("department_cache")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resilient{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (c *Resilient) Get(ctx context.Context) ([]string, error) {
	if c.breaker.IsOpen() {
		if values, err := c.fallback.Get(ctx); err == nil {
			return values, nil
		}
	}

	values, err := c.primary.Get(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrCacheMiss) {
		if c.failed(ctx, err) {
			return c.fallback.Get(ctx)
		}
		return nil, err
	}
	c.succeeded(ctx)
	return values, err
}

func (c *Resilient) Set(ctx context.Context, departments []string) error {
	_ = c.fallback.Set(ctx, departments) //nolint:errcheck // in-memory set cannot fail
	if err := c.primary.Set(ctx, departments); err != nil {
		if c.failed(ctx, err) {
			return nil
		}
		return err
	}
	c.succeeded(ctx)
	return nil
}

// Invalidate always reports primary failures: a stale shared entry would outlive the breaker.
func (c *Resilient) Invalidate(ctx context.Context) error {
	_ = c.fallback.Invalidate(ctx) //nolint:errcheck // in-memory invalidate cannot fail
	if err := c.primary.Invalidate(ctx); err != nil {
		c.failed(ctx, err)
		return err
	}
	c.succeeded(ctx)
	return nil
}

// failed records a primary failure and reports whether callers should use the fallback.
func (c *Resilient) failed(ctx context.Context, err error) bool {
	if c.breaker.Failure() == circuit.Opened {
		c.logger.ErrorContext(ctx, "circuit breaker opened", "circuit", c.breaker.Name(), "error", err)
	}
	return c.breaker.IsOpen()
}

func (c *Resilient) succeeded(ctx context.Context) {
	if c.breaker.Success() == circuit.Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "circuit", c.breaker.Name())
	}
}

var _ DepartmentCache = (*Resilient)(nil)
