//go:build integration

package profession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hrcore/internal/employee/store/profession"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
	"hrcore/pkg/testutil"
	"hrcore/pkg/testutil/containers"
)

// PostgresStoreSuite runs the profession store against a real Postgres.
//
// Justification: "latest profession" is decided by the ORDER BY in FindLatest,
// and NULL salary and dates must round-trip through the nullable columns.
type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *profession.PostgresStore
	employeeID id.EmployeeID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = profession.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateAll(ctx))
	s.employeeID = s.postgres.CreateTestEmployee(ctx, s.T(), "John", "Doe")
}

func (s *PostgresStoreSuite) TestFindLatest() {
	ctx := context.Background()
	first := testutil.NewProfessionBuilder(s.employeeID).Build()
	second := testutil.NewProfessionBuilder(s.employeeID).
		WithTitle("Engineering Manager", "Engineering").
		WithSalary(nil).
		WithEndDate("2026-05-12").
		CreatedAt(testutil.FixedNow.Add(24 * time.Hour)).
		Build()
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	latest, err := s.store.FindLatest(ctx, s.employeeID)
	s.Require().NoError(err)
	s.Equal(second.ID, latest.ID)
	s.Nil(latest.Salary)
	s.Require().NotNil(latest.EndDate)
	s.Equal("2026-05-12", latest.EndDate.Format(time.DateOnly))

	s.Run("no profession", func() {
		other := s.postgres.CreateTestEmployee(ctx, s.T(), "Jane", "Smith")
		_, err := s.store.FindLatest(ctx, other)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestCreateErrors() {
	ctx := context.Background()
	p := testutil.NewProfessionBuilder(s.employeeID).Build()
	s.Require().NoError(s.store.Create(ctx, p))

	s.ErrorIs(s.store.Create(ctx, p), sentinel.ErrAlreadyUsed)

	orphan := testutil.NewProfessionBuilder(id.NewEmployeeID()).Build()
	s.ErrorIs(s.store.Create(ctx, orphan), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	p := testutil.NewProfessionBuilder(s.employeeID).Build()
	s.Require().NoError(s.store.Create(ctx, p))

	p.JobTitle = "Senior Web Developer"
	p.Salary = testutil.Float(150000)
	p.UpdatedAt = testutil.FixedNow.Add(time.Hour)
	s.Require().NoError(s.store.Update(ctx, p))

	latest, err := s.store.FindLatest(ctx, s.employeeID)
	s.Require().NoError(err)
	s.Equal("Senior Web Developer", latest.JobTitle)
	s.Require().NotNil(latest.Salary)
	s.InDelta(150000, *latest.Salary, 0.001)

	ghost := testutil.NewProfessionBuilder(s.employeeID).Build()
	s.ErrorIs(s.store.Update(ctx, ghost), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDepartments() {
	ctx := context.Background()
	jane := s.postgres.CreateTestEmployee(ctx, s.T(), "Jane", "Smith")
	alice := s.postgres.CreateTestEmployee(ctx, s.T(), "Alice", "Johnson")
	for _, p := range []struct {
		employee   id.EmployeeID
		department string
	}{
		{s.employeeID, "Operations"},
		{jane, "Finance"},
		{alice, "Operations"},
		{alice, ""},
	} {
		s.Require().NoError(s.store.Create(ctx,
			testutil.NewProfessionBuilder(p.employee).WithTitle("Analyst", p.department).Build()))
	}

	departments, err := s.store.Departments(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Finance", "Operations"}, departments)
}
