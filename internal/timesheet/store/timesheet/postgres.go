package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hrcore/internal/platform/database"
	"hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// PostgresStore persists timesheets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed timesheet store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *models.Timesheet) error {
	if t == nil {
		return fmt.Errorf("timesheet is required")
	}
	query := `
		INSERT INTO timesheets (id, employee_id, start_time, end_time, hours_worked, status, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(t.ID),
		uuid.UUID(t.EmployeeID),
		t.StartTime,
		t.EndTime,
		database.NullFloat64(t.HoursWorked),
		string(t.Status),
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("timesheet employee missing: %w", sentinel.ErrNotFound)
		}
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("timesheet already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create timesheet: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, t *models.Timesheet) error {
	if t == nil {
		return fmt.Errorf("timesheet is required")
	}
	query := `
		UPDATE timesheets
		SET start_time = $2, end_time = $3, hours_worked = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(t.ID),
		t.StartTime,
		t.EndTime,
		database.NullFloat64(t.HoursWorked),
		string(t.Status),
		t.Notes,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update timesheet: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update timesheet rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const selectRows = `
	SELECT t.id, t.employee_id, t.start_time, t.end_time, t.hours_worked, t.status, t.notes,
		t.created_at, t.updated_at, e.first_name, e.last_name
	FROM timesheets t
	JOIN employees e ON e.id = t.employee_id
`

func (s *PostgresStore) FindByID(ctx context.Context, timesheetID id.TimesheetID) (*models.Row, error) {
	row, err := scanRow(s.db.QueryRowContext(ctx, selectRows+` WHERE t.id = $1`, uuid.UUID(timesheetID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find timesheet: %w", err)
	}
	return row, nil
}

// List returns every timesheet, latest shift first.
func (s *PostgresStore) List(ctx context.Context) ([]models.Row, error) {
	rows, err := s.db.QueryContext(ctx, selectRows+` ORDER BY t.start_time DESC, t.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer rows.Close()

	out := []models.Row{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timesheet: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timesheets: %w", err)
	}
	return out, nil
}

type timesheetRow interface {
	Scan(dest ...any) error
}

func scanRow(row timesheetRow) (*models.Row, error) {
	var (
		r         models.Row
		timesheet uuid.UUID
		employee  uuid.UUID
		hours     sql.NullFloat64
		status    string
	)
	if err := row.Scan(
		&timesheet,
		&employee,
		&r.StartTime,
		&r.EndTime,
		&hours,
		&status,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.FirstName,
		&r.LastName,
	); err != nil {
		return nil, err
	}
	r.ID = id.TimesheetID(timesheet)
	r.EmployeeID = id.EmployeeID(employee)
	r.HoursWorked = database.Float64Ptr(hours)
	r.Status = models.Status(status)
	r.StartTime = r.StartTime.UTC()
	r.EndTime = r.EndTime.UTC()
	return &r, nil
}
