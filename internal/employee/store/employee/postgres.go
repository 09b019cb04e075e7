package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hrcore/internal/employee/models"
	"hrcore/internal/platform/database"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// PostgresStore persists employees in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed employee store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeColumns = `e.id, e.first_name, e.last_name, e.birth_date, e.email, e.phone, e.address,
	e.photo_path, e.inactive, e.inactive_reason, e.created_at, e.updated_at`

func (s *PostgresStore) Create(ctx context.Context, e *models.Employee) error {
	if e == nil {
		return fmt.Errorf("employee is required")
	}
	query := `
		INSERT INTO employees (id, first_name, last_name, birth_date, email, phone, address,
			photo_path, inactive, inactive_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(e.ID),
		e.FirstName,
		e.LastName,
		database.NullTime(e.BirthDate),
		e.Email,
		e.Phone,
		e.Address,
		e.PhotoPath,
		e.Inactive,
		e.InactiveReason,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("employee already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Employee) error {
	if e == nil {
		return fmt.Errorf("employee is required")
	}
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, birth_date = $4, email = $5, phone = $6,
			address = $7, photo_path = $8, inactive = $9, inactive_reason = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(e.ID),
		e.FirstName,
		e.LastName,
		database.NullTime(e.BirthDate),
		e.Email,
		e.Phone,
		e.Address,
		e.PhotoPath,
		e.Inactive,
		e.InactiveReason,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.id = $1`
	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, uuid.UUID(employeeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

// ListActive returns active employees ordered by first and last name.
func (s *PostgresStore) ListActive(ctx context.Context) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees e
		WHERE NOT e.inactive
		ORDER BY e.first_name, e.last_name, e.created_at, e.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

// List returns listing rows joined with each employee's latest profession and
// latest CV. The filter must be normalized.
func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]models.EmployeeRow, error) {
	query, args := buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []models.EmployeeRow
	for rows.Next() {
		row, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		out = append(out, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee rows: %w", err)
	}
	return out, nil
}

func buildListQuery(filter models.ListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Department != "" {
		where = append(where, "p.department = "+arg(filter.Department))
	}
	switch filter.Active {
	case models.ActiveOnly:
		where = append(where, "NOT e.inactive")
	case models.ActiveInactive:
		where = append(where, "e.inactive")
	}
	if filter.Search != "" {
		pattern := arg("%" + escapeLike(filter.Search) + "%")
		where = append(where, "(e.first_name ILIKE "+pattern+" OR e.last_name ILIKE "+pattern+")")
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + employeeColumns + `,
			COALESCE(p.job_title, ''), COALESCE(p.department, ''), p.salary, p.start_date, p.end_date,
			COALESCE(cv.file_path, ''), COALESCE(cv.original_name, '')
		FROM employees e
		LEFT JOIN LATERAL (
			SELECT job_title, department, salary, start_date, end_date
			FROM professions
			WHERE employee_id = e.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) p ON TRUE
		LEFT JOIN LATERAL (
			SELECT file_path, original_name
			FROM employee_documents
			WHERE employee_id = e.id AND document_type = 'CV'
			ORDER BY uploaded_at DESC, id DESC
			LIMIT 1
		) cv ON TRUE`)
	if len(where) > 0 {
		b.WriteString("\n\t\tWHERE " + strings.Join(where, " AND "))
	}
	b.WriteString("\n\t\tORDER BY " + orderClause(filter.SortBy))
	return b.String(), args
}

func orderClause(sortBy models.SortKey) string {
	const tiebreak = "e.created_at, e.id"
	switch sortBy {
	case models.SortByAge:
		return "e.birth_date DESC NULLS LAST, " + tiebreak
	case models.SortByEndDate:
		return "p.end_date DESC NULLS LAST, " + tiebreak
	case models.SortByDepartment:
		return "NULLIF(p.department, '') ASC NULLS LAST, " + tiebreak
	default:
		return tiebreak
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type employeeRow interface {
	Scan(dest ...any) error
}

func employeeDest(e *models.Employee, employeeID *uuid.UUID, birth *sql.NullTime) []any {
	return []any{
		employeeID, &e.FirstName, &e.LastName, birth, &e.Email, &e.Phone, &e.Address,
		&e.PhotoPath, &e.Inactive, &e.InactiveReason, &e.CreatedAt, &e.UpdatedAt,
	}
}

func scanEmployee(row employeeRow) (*models.Employee, error) {
	var (
		e          models.Employee
		employeeID uuid.UUID
		birth      sql.NullTime
	)
	if err := row.Scan(employeeDest(&e, &employeeID, &birth)...); err != nil {
		return nil, err
	}
	e.ID = id.EmployeeID(employeeID)
	e.BirthDate = database.DatePtr(birth)
	return &e, nil
}

func scanEmployeeRow(row employeeRow) (*models.EmployeeRow, error) {
	var (
		r          models.EmployeeRow
		employeeID uuid.UUID
		birth      sql.NullTime
		salary     sql.NullFloat64
		start, end sql.NullTime
	)
	dest := append(employeeDest(&r.Employee, &employeeID, &birth),
		&r.JobTitle, &r.Department, &salary, &start, &end,
		&r.CVPath, &r.CVFileName,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	r.ID = id.EmployeeID(employeeID)
	r.BirthDate = database.DatePtr(birth)
	r.Salary = database.Float64Ptr(salary)
	r.StartDate = database.DatePtr(start)
	r.EndDate = database.DatePtr(end)
	return &r, nil
}
