package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	empmodels "hrcore/internal/employee/models"
	employeestore "hrcore/internal/employee/store/employee"
	"hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

func shift(employeeID id.EmployeeID, start time.Time) *models.Timesheet {
	return &models.Timesheet{
		ID:         id.NewTimesheetID(),
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
		Status:     models.StatusSubmitted,
		CreatedAt:  start,
		UpdatedAt:  start,
	}
}

func TestListJoinsNamesLatestFirst(t *testing.T) {
	ctx := context.Background()
	employees := employeestore.NewInMemory()
	jane := &empmodels.Employee{ID: id.NewEmployeeID(), FirstName: "Jane", LastName: "Smith"}
	require.NoError(t, employees.Create(ctx, jane))

	store := NewInMemory(WithEmployees(employees))
	day := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	older := shift(jane.ID, day)
	newer := shift(jane.ID, day.Add(24*time.Hour))
	orphan := shift(id.NewEmployeeID(), day.Add(-24*time.Hour))
	for _, ts := range []*models.Timesheet{older, orphan, newer} {
		require.NoError(t, store.Create(ctx, ts))
	}

	rows, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
	assert.Equal(t, orphan.ID, rows[2].ID)
	assert.Equal(t, "Jane Smith", rows[0].EmployeeName())
	assert.Empty(t, rows[2].FirstName)
}

func TestFindByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	ts := shift(id.NewEmployeeID(), time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Create(ctx, ts))
	assert.ErrorIs(t, store.Create(ctx, ts), sentinel.ErrAlreadyUsed)

	_, err := store.FindByID(ctx, id.NewTimesheetID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	changed := *ts
	changed.Status = models.StatusApproved
	changed.EmployeeID = id.NewEmployeeID()
	require.NoError(t, store.Update(ctx, &changed))

	got, err := store.FindByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, ts.EmployeeID, got.EmployeeID, "update never moves a timesheet to another employee")

	assert.ErrorIs(t, store.Update(ctx, shift(ts.EmployeeID, ts.StartTime)), sentinel.ErrNotFound)
}
