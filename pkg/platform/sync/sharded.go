// Package sync provides keyed locking for read-modify-write sequences.
package sync

import (
	"hash/maphash"
	"sync"
)

// DefaultShards is the shard count used by NewShardedMutex.
const DefaultShards = 32

// ShardedMutex serializes work per key without one global lock. Keys that hash to
// the same shard share a mutex, so holders must never lock a second key.
type ShardedMutex struct {
	seed   maphash.Seed
	shards []sync.Mutex
}

func NewShardedMutex() *ShardedMutex {
	return NewShardedMutexN(DefaultShards)
}

// NewShardedMutexN creates a mutex with n shards; n below 1 means one shard.
func NewShardedMutexN(n int) *ShardedMutex {
	return &ShardedMutex{seed: maphash.MakeSeed(), shards: make([]sync.Mutex, max(n, 1))}
}

// Lock acquires the shard for key and returns its release function.
func (m *ShardedMutex) Lock(key string) (unlock func()) {
	mu := &m.shards[m.shardFor(key)]
	mu.Lock()
	return mu.Unlock
}

func (m *ShardedMutex) shardFor(key string) int {
	return int(maphash.String(m.seed, key) % uint64(len(m.shards)))
}
