package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullHelpers(t *testing.T) {
	assert.False(t, NullTime(nil).Valid)
	assert.Nil(t, DatePtr(sql.NullTime{}))

	local := time.Date(2025, 2, 10, 23, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))
	d := DatePtr(sql.NullTime{Time: local, Valid: true})
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), *d)

	salary := 1234.5
	assert.Equal(t, &salary, Float64Ptr(NullFloat64(&salary)))
	assert.Nil(t, Float64Ptr(NullFloat64(nil)))

	rating := 7
	assert.Equal(t, &rating, IntPtr(NullInt(&rating)))
	assert.Nil(t, IntPtr(NullInt(nil)))
}
