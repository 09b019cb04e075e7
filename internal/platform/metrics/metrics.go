// Package metrics runs the background collectors for connection pool gauges.
package metrics

import (
	"context"
	"time"
)

// PoolRecorder publishes a snapshot of a connection pool's statistics.
type PoolRecorder interface {
	RecordPoolStats()
}

// RunPoolRecorders records every recorder on each tick until ctx is done.
// Nil recorders are skipped so optional backends can be passed unconditionally.
func RunPoolRecorders(ctx context.Context, interval time.Duration, recorders ...PoolRecorder) {
	active := make([]PoolRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, r := range active {
				r.RecordPoolStats()
			}
		}
	}
}
