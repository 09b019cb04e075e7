//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"hrcore/internal/platform/migrate"
	id "hrcore/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// hrTables lists every table the migrations create, children first.
var hrTables = []string{
	"review_metrics",
	"performance_reviews",
	"employee_documents",
	"timesheets",
	"professions",
	"employees",
}

// NewPostgresContainer starts a new Postgres container with the embedded
// migrations applied through the same runner `hrctl migrate up` uses.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("hr_test"),
		postgres.WithUsername("hr"),
		postgres.WithPassword("hr_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := applyMigrations(dsn); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	// Shared through Manager; Ryuk removes the container when the process exits.
	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

func applyMigrations(dsn string) error {
	runner, err := migrate.New(dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}
	defer runner.Close() //nolint:errcheck // test setup
	return runner.Up()
}

// TruncateTables clears the given tables.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateAll clears every HR table. Call it between tests.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx, hrTables...)
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// QueryRow runs a SQL query expected to return a single row.
func (p *PostgresContainer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.DB.QueryRowContext(ctx, query, args...)
}

// CreateTestEmployee inserts an active employee and returns its ID.
// Fails the test if insertion fails.
func (p *PostgresContainer) CreateTestEmployee(ctx context.Context, t testing.TB, firstName, lastName string) id.EmployeeID {
	t.Helper()
	employeeID := id.EmployeeID(uuid.New())
	_, err := p.Exec(ctx, `
		INSERT INTO employees (id, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, uuid.UUID(employeeID), firstName, lastName)
	if err != nil {
		t.Fatalf("CreateTestEmployee: %v", err)
	}
	return employeeID
}
