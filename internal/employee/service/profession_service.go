package service

import (
	"context"
	"time"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
)

// UpdateProfession replaces the latest profession of an employee, creating one
// when none exists. Dates, their order and the salary are validated.
func (s *Service) UpdateProfession(ctx context.Context, employeeID id.EmployeeID, cmd *UpdateProfessionCommand) (*models.Profession, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if outcome := compliance.ValidateProfessionFields(cmd.StartDate, cmd.EndDate, cmd.Salary, s.minimumWage); !outcome.OK {
		return nil, s.reject(ctx, outcome)
	}
	if _, err := s.loadEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	unlock := s.professionLocks.Lock(employeeID.String())
	defer unlock()

	current, err := s.latestProfession(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := requesttime.Now(ctx)
	var prof *models.Profession
	if current == nil {
		prof = newProfession(employeeID, &cmd.ProfessionFields, now)
		if err := s.professions.Create(ctx, prof); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profession")
		}
	} else {
		prof = current
		applyProfession(prof, &cmd.ProfessionFields)
		prof.UpdatedAt = now
		if err := s.professions.Update(ctx, prof); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profession")
		}
	}

	s.invalidateDepartments(ctx)
	s.publish(ctx, events.ProfessionUpdated, employeeID, now, map[string]string{
		"job_title":  prof.JobTitle,
		"department": prof.Department,
	})
	return prof, nil
}

func newProfession(employeeID id.EmployeeID, f *ProfessionFields, now time.Time) *models.Profession {
	p := &models.Profession{
		ID:         id.NewProfessionID(),
		EmployeeID: employeeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyProfession(p, f)
	return p
}

func applyProfession(p *models.Profession, f *ProfessionFields) {
	p.JobTitle = f.JobTitle
	p.Department = f.Department
	p.Salary = parseOptionalAmount(f.Salary)
	p.StartDate = parseOptionalDate(f.StartDate)
	p.EndDate = parseOptionalDate(f.EndDate)
}
