package profession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hrcore/internal/employee/models"
	"hrcore/internal/platform/database"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// PostgresStore persists professions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed profession store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Profession) error {
	if p == nil {
		return fmt.Errorf("profession is required")
	}
	query := `
		INSERT INTO professions (id, employee_id, job_title, department, salary, start_date, end_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID),
		uuid.UUID(p.EmployeeID),
		p.JobTitle,
		p.Department,
		database.NullFloat64(p.Salary),
		database.NullTime(p.StartDate),
		database.NullTime(p.EndDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("profession employee missing: %w", sentinel.ErrNotFound)
		}
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("profession already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create profession: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Profession) error {
	if p == nil {
		return fmt.Errorf("profession is required")
	}
	query := `
		UPDATE professions
		SET job_title = $2, department = $3, salary = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID),
		p.JobTitle,
		p.Department,
		database.NullFloat64(p.Salary),
		database.NullTime(p.StartDate),
		database.NullTime(p.EndDate),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profession: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profession rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindLatest(ctx context.Context, employeeID id.EmployeeID) (*models.Profession, error) {
	query := `
		SELECT id, employee_id, job_title, department, salary, start_date, end_date, created_at, updated_at
		FROM professions
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	p, err := scanProfession(s.db.QueryRowContext(ctx, query, uuid.UUID(employeeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find latest profession: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Departments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT department
		FROM professions
		WHERE department <> ''
		ORDER BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return out, nil
}

type professionRow interface {
	Scan(dest ...any) error
}

func scanProfession(row professionRow) (*models.Profession, error) {
	var (
		p                        models.Profession
		professionID, employeeID uuid.UUID
		salary                   sql.NullFloat64
		start, end               sql.NullTime
	)
	if err := row.Scan(&professionID, &employeeID, &p.JobTitle, &p.Department, &salary, &start, &end,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.ProfessionID(professionID)
	p.EmployeeID = id.EmployeeID(employeeID)
	p.Salary = database.Float64Ptr(salary)
	p.StartDate = database.DatePtr(start)
	p.EndDate = database.DatePtr(end)
	return &p, nil
}
