package database

import (
	"database/sql"
	"time"
)

// Helpers for nullable columns. The domain uses nil pointers for absent values.

func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func NullInt(i *int) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*i), Valid: true} //nolint:gosec // ratings are bounded 1-10
}

// DatePtr returns a pointer to the date part of a nullable DATE column in UTC.
func DatePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	d := Date(t.Time)
	return &d
}

// Date drops the clock part of a DATE column value, keeping its calendar day in UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Float64Ptr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func IntPtr(i sql.NullInt32) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int32)
	return &v
}
