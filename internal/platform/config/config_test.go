package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HR_ADDR", "DATABASE_URL", "KAFKA_BROKERS", "MINIMUM_WAGE", "UPLOAD_DIR"} {
		t.Setenv(k, "")
	}

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, 600.0, cfg.Rules.MinimumWage)
	assert.Equal(t, "+961", cfg.Rules.DefaultCountryCode)
	assert.Equal(t, "public/uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HR_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MINIMUM_WAGE", "750.5")
	t.Setenv("DEPARTMENT_CACHE_TTL", "90s")
	t.Setenv("SEED_ON_START", "true")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750.5, cfg.Rules.MinimumWage)
	assert.Equal(t, 90*time.Second, cfg.Redis.DepartmentTTL)
	assert.True(t, cfg.SeedOnStart)
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	os.Unsetenv("UPLOAD_DIR") //nolint:errcheck // restored by t.Setenv cleanup

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("UPLOAD_DIR=/srv/hr/uploads\n"), 0o600))

	cfg := Load(path)
	assert.Equal(t, "/srv/hr/uploads", cfg.Uploads.Dir)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MINIMUM_WAGE", "-5")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, 600.0, cfg.Rules.MinimumWage)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
