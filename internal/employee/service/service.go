package service

import (
	"context"
	"io"
	"log/slog"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/cache"
	employeemetrics "hrcore/internal/employee/metrics"
	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	"hrcore/internal/platform/tracer"
	"hrcore/internal/upload"
	id "hrcore/pkg/domain"
	platformsync "hrcore/pkg/platform/sync"
)

// Store interfaces define persistence contracts.

type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.EmployeeRow, error)
}

type ProfessionStore interface {
	Create(ctx context.Context, p *models.Profession) error
	Update(ctx context.Context, p *models.Profession) error
	FindLatest(ctx context.Context, employeeID id.EmployeeID) (*models.Profession, error)
	Departments(ctx context.Context) ([]string, error)
}

type DocumentStore interface {
	Create(ctx context.Context, d *models.Document) error
	FindByID(ctx context.Context, documentID id.DocumentID) (*models.Document, error)
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]models.Document, error)
	Delete(ctx context.Context, documentID id.DocumentID) error
}

type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) error
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]models.Review, error)
}

// FileStorage keeps uploaded employee files and returns their public paths.
type FileStorage interface {
	Save(ctx context.Context, kind upload.Kind, employeeID id.EmployeeID, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// Service orchestrates employee records, their professions, documents and reviews,
// and evaluates compliance for them.
type Service struct {
	employees   EmployeeStore
	professions ProfessionStore
	documents   DocumentStore
	reviews     ReviewStore
	files       FileStorage

	logger      *slog.Logger
	metrics     *employeemetrics.Metrics
	tracer      tracer.Tracer
	publisher   events.Publisher
	departments cache.DepartmentCache

	minimumWage float64
	countryCode string

	// professionLocks serializes the read-latest-then-write of UpdateProfession per employee.
	professionLocks *platformsync.ShardedMutex
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *employeemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithDepartmentCache(c cache.DepartmentCache) Option {
	return func(s *Service) {
		s.departments = c
	}
}

// WithMinimumWage sets the salary floor. Non-positive values keep the default.
func WithMinimumWage(amount float64) Option {
	return func(s *Service) {
		if amount > 0 {
			s.minimumWage = amount
		}
	}
}

// WithCountryCode sets the phone prefix used when a submission has none.
func WithCountryCode(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.countryCode = code
		}
	}
}

// DefaultCountryCode is prefixed to phone numbers submitted without one.
const DefaultCountryCode = "+961"

func New(employees EmployeeStore, professions ProfessionStore, documents DocumentStore, reviews ReviewStore, files FileStorage, opts ...Option) *Service {
	s := &Service{
		employees:       employees,
		professions:     professions,
		documents:       documents,
		reviews:         reviews,
		files:           files,
		logger:          slog.Default(),
		tracer:          tracer.NewNoop(),
		publisher:       events.Noop{},
		minimumWage:     compliance.DefaultMinimumWage,
		countryCode:     DefaultCountryCode,
		professionLocks: platformsync.NewShardedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
