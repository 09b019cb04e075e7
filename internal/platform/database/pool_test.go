package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcore/internal/platform/config"
)

func TestNewWithoutURLReturnsNil(t *testing.T) {
	pool, err := New(context.Background(), config.Database{})
	require.NoError(t, err)
	assert.Nil(t, pool)

	// nil pools are safe to use from main's shutdown path
	assert.NoError(t, pool.Close())
	assert.Error(t, pool.Health(context.Background()))
	pool.RecordPoolStats()
}

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert employee: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("23503")))
}
