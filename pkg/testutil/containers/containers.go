//go:build integration

// Package containers starts the Postgres, Redis and Kafka dependencies for
// integration tests. Each container is started once per test binary and shared by
// every suite in the package; suites reset state in SetupTest.
package containers

import (
	"sync"
	"testing"
)

type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
	kafka    *KafkaContainer
}

var (
	manager     *Manager
	managerOnce sync.Once
)

func GetManager() *Manager {
	managerOnce.Do(func() { manager = &Manager{} })
	return manager
}

// shared returns *slot, starting it with start on first use.
func shared[T any](m *Manager, t *testing.T, slot **T, start func(*testing.T) *T) *T {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if *slot == nil {
		*slot = start(t)
	}
	return *slot
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	return shared(m, t, &m.postgres, NewPostgresContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	return shared(m, t, &m.redis, NewRedisContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	return shared(m, t, &m.kafka, NewKafkaContainer)
}
