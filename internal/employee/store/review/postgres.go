package review

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hrcore/internal/employee/models"
	"hrcore/internal/platform/database"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// PostgresStore persists performance reviews and their metric lines in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed review store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the review and all its metrics in one transaction.
func (s *PostgresStore) Create(ctx context.Context, r *models.Review) error {
	if r == nil {
		return fmt.Errorf("review is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO performance_reviews (id, employee_id, reviewer_name, review_date, overall_rating,
			overall_comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		uuid.UUID(r.ID),
		uuid.UUID(r.EmployeeID),
		r.ReviewerName,
		r.ReviewDate,
		database.NullInt(r.OverallRating),
		r.OverallComments,
		r.CreatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("review employee missing: %w", sentinel.ErrNotFound)
		}
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("review already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create review: %w", err)
	}

	for _, m := range r.Metrics {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO review_metrics (review_id, position, metric_key, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.UUID(r.ID), m.Position, string(m.Key), m.Rating, m.Comment)
		if err != nil {
			return fmt.Errorf("create review metric: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

// ListByEmployee loads reviews and then their metrics in a single follow-up query.
func (s *PostgresStore) ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, reviewer_name, review_date, overall_rating, overall_comments, created_at
		FROM performance_reviews
		WHERE employee_id = $1
		ORDER BY review_date DESC, created_at DESC, id DESC
	`, uuid.UUID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			r                    models.Review
			reviewID, employeeID uuid.UUID
			rating               sql.NullInt32
		)
		if err := rows.Scan(&reviewID, &employeeID, &r.ReviewerName, &r.ReviewDate, &rating,
			&r.OverallComments, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		r.ID = id.ReviewID(reviewID)
		r.EmployeeID = id.EmployeeID(employeeID)
		r.OverallRating = database.IntPtr(rating)
		r.ReviewDate = database.Date(r.ReviewDate)
		index[reviewID] = len(reviews)
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	if len(reviews) == 0 {
		return reviews, nil
	}

	if err := s.attachMetrics(ctx, reviews, index); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *PostgresStore) attachMetrics(ctx context.Context, reviews []models.Review, index map[uuid.UUID]int) error {
	placeholders := make([]string, 0, len(reviews))
	args := make([]any, 0, len(reviews))
	for i, r := range reviews {
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
		args = append(args, uuid.UUID(r.ID))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT review_id, position, metric_key, rating, comment
		FROM review_metrics
		WHERE review_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY review_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("list review metrics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reviewID uuid.UUID
			m        models.ReviewMetric
			key      string
		)
		if err := rows.Scan(&reviewID, &m.Position, &key, &m.Rating, &m.Comment); err != nil {
			return fmt.Errorf("scan review metric: %w", err)
		}
		m.Key = models.MetricKey(key)
		i, ok := index[reviewID]
		if !ok {
			continue
		}
		reviews[i].Metrics = append(reviews[i].Metrics, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate review metrics: %w", err)
	}
	return nil
}
