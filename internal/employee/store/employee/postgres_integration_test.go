//go:build integration

package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hrcore/internal/employee/models"
	documentstore "hrcore/internal/employee/store/document"
	"hrcore/internal/employee/store/employee"
	professionstore "hrcore/internal/employee/store/profession"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
	"hrcore/pkg/testutil"
	"hrcore/pkg/testutil/containers"
)

// PostgresStoreSuite runs the employee store against a real Postgres.
//
// Justification: the listing query joins the latest profession and CV with
// LATERAL subqueries and relies on Postgres NULL ordering; the in-memory store
// only mirrors those semantics.
type PostgresStoreSuite struct {
	suite.Suite
	postgres    *containers.PostgresContainer
	store       *employee.PostgresStore
	professions *professionstore.PostgresStore
	documents   *documentstore.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = employee.NewPostgres(s.postgres.DB)
	s.professions = professionstore.NewPostgres(s.postgres.DB)
	s.documents = documentstore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) create(b *testutil.EmployeeBuilder) *models.Employee {
	e := b.Build()
	s.Require().NoError(s.store.Create(context.Background(), e))
	return e
}

func (s *PostgresStoreSuite) list(filter models.ListFilter) []models.EmployeeRow {
	s.Require().NoError(filter.Normalize())
	rows, err := s.store.List(context.Background(), filter)
	s.Require().NoError(err)
	return rows
}

func names(rows []models.EmployeeRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.FirstName)
	}
	return out
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	e := s.create(testutil.NewEmployeeBuilder())

	got, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(e.FullName(), got.FullName())
	s.Equal("1995-01-01", models.FormatDate(got.BirthDate))
	s.Equal("+961123456789", got.Phone)
	s.True(got.IsActive())

	s.Run("duplicate id", func() {
		s.ErrorIs(s.store.Create(ctx, e), sentinel.ErrAlreadyUsed)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByID(ctx, id.NewEmployeeID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestConcurrentCreateSameID() {
	e := testutil.NewEmployeeBuilder().Build()
	result := testutil.RunConcurrent(20, func(int) error {
		return s.store.Create(context.Background(), e)
	})
	s.Empty(result.Unexpected)
	s.Equal(1, result.Successes)
	s.Equal(19, result.Conflicts)
}

func (s *PostgresStoreSuite) TestUpdatePersistsDeactivation() {
	ctx := context.Background()
	e := s.create(testutil.NewEmployeeBuilder())

	s.Require().NoError(e.Deactivate("Resigned", testutil.FixedNow.Add(time.Hour)))
	e.SetPhoto("/uploads/photos/x.png", testutil.FixedNow.Add(time.Hour))
	s.Require().NoError(s.store.Update(ctx, e))

	got, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.False(got.IsActive())
	s.Equal("Resigned", got.InactiveReason)
	s.Equal("/uploads/photos/x.png", got.PhotoPath)

	active, err := s.store.ListActive(ctx)
	s.Require().NoError(err)
	s.Empty(active)

	s.Run("unknown id", func() {
		ghost := testutil.NewEmployeeBuilder().Build()
		s.ErrorIs(s.store.Update(ctx, ghost), sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestListJoinsLatestProfessionAndCV() {
	ctx := context.Background()
	e := s.create(testutil.NewEmployeeBuilder())

	old := testutil.NewProfessionBuilder(e.ID).WithTitle("Intern", "Support").Build()
	s.Require().NoError(s.professions.Create(ctx, old))
	current := testutil.NewProfessionBuilder(e.ID).WithTitle("Web Developer", "Engineering").
		CreatedAt(testutil.FixedNow.Add(time.Hour)).Build()
	s.Require().NoError(s.professions.Create(ctx, current))

	for i, name := range []string{"cv-2024.pdf", "cv-2025.pdf"} {
		s.Require().NoError(s.documents.Create(ctx, &models.Document{
			ID:           id.NewDocumentID(),
			EmployeeID:   e.ID,
			Type:         models.DocumentTypeCV,
			FilePath:     "/uploads/documents/" + name,
			OriginalName: name,
			UploadedAt:   testutil.FixedNow.Add(time.Duration(i) * time.Hour),
		}))
	}

	rows := s.list(models.ListFilter{})
	s.Require().Len(rows, 1)
	s.Equal("Web Developer", rows[0].JobTitle)
	s.Equal("Engineering", rows[0].Department)
	s.Equal("cv-2025.pdf", rows[0].CVFileName)
	s.Require().NotNil(rows[0].Salary)
	s.InDelta(100000, *rows[0].Salary, 0)
}

func (s *PostgresStoreSuite) TestListFiltersAndOrder() {
	ctx := context.Background()
	base := testutil.FixedNow

	john := s.create(testutil.NewEmployeeBuilder().WithName("John", "Doe").WithBirthDate("1995-01-01").CreatedAt(base))
	jane := s.create(testutil.NewEmployeeBuilder().WithName("Jane", "Smith").WithBirthDate("1989-01-01").CreatedAt(base.Add(time.Minute)))
	alice := s.create(testutil.NewEmployeeBuilder().WithName("Alice", "Johnson").WithBirthDate("").
		Inactive("Retired").CreatedAt(base.Add(2 * time.Minute)))

	s.Require().NoError(s.professions.Create(ctx, testutil.NewProfessionBuilder(john.ID).
		WithTitle("Site Reliability", "Operations").WithEndDate("2026-01-01").Build()))
	s.Require().NoError(s.professions.Create(ctx, testutil.NewProfessionBuilder(jane.ID).
		WithTitle("Accountant", "Finance").Build()))
	s.Equal("Retired", alice.InactiveReason)

	s.Run("default order is creation order", func() {
		s.Equal([]string{"John", "Jane", "Alice"}, names(s.list(models.ListFilter{})))
	})

	s.Run("age puts the youngest first and missing birth dates last", func() {
		s.Equal([]string{"John", "Jane", "Alice"}, names(s.list(models.ListFilter{SortBy: models.SortByAge})))
	})

	s.Run("department sorts blanks last", func() {
		s.Equal([]string{"Jane", "John", "Alice"}, names(s.list(models.ListFilter{SortBy: models.SortByDepartment})))
	})

	s.Run("end date puts open-ended last", func() {
		s.Equal([]string{"John", "Jane", "Alice"}, names(s.list(models.ListFilter{SortBy: models.SortByEndDate})))
	})

	s.Run("department filter", func() {
		s.Equal([]string{"Jane"}, names(s.list(models.ListFilter{Department: "Finance"})))
	})

	s.Run("active filter", func() {
		s.Equal([]string{"John", "Jane"}, names(s.list(models.ListFilter{Active: models.ActiveOnly})))
		s.Equal([]string{"Alice"}, names(s.list(models.ListFilter{Active: models.ActiveInactive})))
	})

	s.Run("search is case-insensitive on either name", func() {
		s.Equal([]string{"John", "Alice"}, names(s.list(models.ListFilter{Search: "JOHN"})))
		s.Equal([]string{"Jane"}, names(s.list(models.ListFilter{Search: "smi"})))
	})

	s.Run("search treats wildcards literally", func() {
		s.Empty(s.list(models.ListFilter{Search: "%"}))
	})
}
