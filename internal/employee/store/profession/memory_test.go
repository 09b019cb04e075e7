package profession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcore/internal/employee/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

func TestFindLatest(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	empID := id.NewEmployeeID()
	now := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)

	_, err := store.FindLatest(ctx, empID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	first := &models.Profession{ID: id.NewProfessionID(), EmployeeID: empID, JobTitle: "Intern", CreatedAt: now}
	second := &models.Profession{ID: id.NewProfessionID(), EmployeeID: empID, JobTitle: "Web Developer", CreatedAt: now.Add(time.Hour)}
	other := &models.Profession{ID: id.NewProfessionID(), EmployeeID: id.NewEmployeeID(), JobTitle: "CEO", CreatedAt: now.Add(2 * time.Hour)}
	for _, p := range []*models.Profession{second, first, other} {
		require.NoError(t, store.Create(ctx, p))
	}

	latest, err := store.FindLatest(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, "Web Developer", latest.JobTitle)

	latest.JobTitle = "Senior Web Developer"
	require.NoError(t, store.Update(ctx, latest))
	again, err := store.FindLatest(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Web Developer", again.JobTitle)
}

func TestUpdateMissingProfession(t *testing.T) {
	err := NewInMemory().Update(context.Background(), &models.Profession{ID: id.NewProfessionID()})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDepartments(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	for _, dept := range []string{"Operations", "", "Engineering", "Operations", "HR"} {
		require.NoError(t, store.Create(ctx, &models.Profession{
			ID: id.NewProfessionID(), EmployeeID: id.NewEmployeeID(), Department: dept,
		}))
	}

	depts, err := store.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "HR", "Operations"}, depts)
}
