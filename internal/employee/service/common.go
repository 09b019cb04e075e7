package service

import (
	"context"
	"errors"
	"time"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/sentinel"
)

// ID validation helpers reduce repetition in service methods.

func requireEmployeeID(employeeID id.EmployeeID) error {
	if employeeID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "employee ID required")
	}
	return nil
}

func requireDocumentID(documentID id.DocumentID) error {
	if documentID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "document ID required")
	}
	return nil
}

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapEmployeeErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "employee not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapDocumentErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "document not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func (s *Service) loadEmployee(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	if err := requireEmployeeID(employeeID); err != nil {
		return nil, err
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, wrapEmployeeErr(err, "failed to load employee")
	}
	return emp, nil
}

// latestProfession returns nil without error when the employee has no profession.
func (s *Service) latestProfession(ctx context.Context, employeeID id.EmployeeID) (*models.Profession, error) {
	p, err := s.professions.FindLatest(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profession")
	}
	return p, nil
}

func (s *Service) reject(ctx context.Context, outcome compliance.ValidationOutcome) error {
	if s.metrics != nil {
		s.metrics.IncrementRecordsRejected()
	}
	s.logger.InfoContext(ctx, "employee record rejected", "problems", len(outcome.Problems))
	return &models.RecordInvalidError{Outcome: outcome}
}

func (s *Service) checkCompliance(birthDate *time.Time, p *models.Profession, hasID bool, now time.Time) compliance.ComplianceOutcome {
	outcome := compliance.CheckCompliance(compliance.ComplianceInput{
		BirthDate:     models.FormatDate(birthDate),
		Salary:        p.SalaryString(),
		HasIDDocument: hasID,
		MinimumWage:   s.minimumWage,
	}, now)
	if s.metrics != nil {
		for _, f := range outcome.Findings {
			s.metrics.ObserveComplianceFinding(string(f.Category), f.Satisfied)
		}
	}
	return outcome
}

func (s *Service) publish(ctx context.Context, t events.Type, employeeID id.EmployeeID, now time.Time, data map[string]string) {
	s.publisher.Publish(ctx, events.New(t, employeeID, now, data))
}

func (s *Service) invalidateDepartments(ctx context.Context) {
	if s.departments == nil {
		return
	}
	if err := s.departments.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate department cache", "error", err)
	}
}

// parseOptionalDate converts an already validated date string.
func parseOptionalDate(value string) *time.Time {
	t, ok := compliance.ParseDate(value)
	if !ok {
		return nil
	}
	return &t
}

// parseOptionalAmount converts an already validated amount string.
func parseOptionalAmount(value string) *float64 {
	n, ok := compliance.ParseAmount(value)
	if !ok {
		return nil
	}
	return &n
}
