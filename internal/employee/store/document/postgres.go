package document

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

// PostgresStore persists employee document rows in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, d *models.Document) error {
	if d == nil {
		return fmt.Errorf("document is required")
	}
	query := `
		INSERT INTO employee_documents (id, employee_id, document_type, file_path, original_name, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(d.ID),
		uuid.UUID(d.EmployeeID),
		string(d.Type),
		d.FilePath,
		d.OriginalName,
		d.UploadedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("document employee missing: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, documentID id.DocumentID) (*models.Document, error) {
	query := `
		SELECT id, employee_id, document_type, file_path, original_name, uploaded_at
		FROM employee_documents
		WHERE id = $1
	`
	d, err := scanDocument(s.db.QueryRowContext(ctx, query, uuid.UUID(documentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]models.Document, error) {
	query := `
		SELECT id, employee_id, document_type, file_path, original_name, uploaded_at
		FROM employee_documents
		WHERE employee_id = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) HasType(ctx context.Context, employeeID id.EmployeeID, t models.DocumentType) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM employee_documents WHERE employee_id = $1 AND document_type = $2)
	`, uuid.UUID(employeeID), string(t)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check document type: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Delete(ctx context.Context, documentID id.DocumentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employee_documents WHERE id = $1`, uuid.UUID(documentID))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type documentRow interface {
	Scan(dest ...any) error
}

func scanDocument(row documentRow) (*models.Document, error) {
	var (
		d                      models.Document
		documentID, employeeID uuid.UUID
		docType                string
	)
	if err := row.Scan(&documentID, &employeeID, &docType, &d.FilePath, &d.OriginalName, &d.UploadedAt); err != nil {
		return nil, err
	}
	d.ID = id.DocumentID(documentID)
	d.EmployeeID = id.EmployeeID(employeeID)
	d.Type = models.DocumentType(docType)
	return &d, nil
}
