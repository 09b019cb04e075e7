package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	"hrcore/internal/platform/tracer"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
	"hrcore/pkg/platform/sentinel"
	"hrcore/pkg/platform/validation"
)

// Preview validates a submission and evaluates compliance without saving anything.
func (s *Service) Preview(ctx context.Context, cmd *CreateEmployeeCommand, hasIDDocument bool) (*RecordPreview, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	record := cmd.Record()
	return &RecordPreview{
		Validation: compliance.ValidateEmployeeRecordWithMinimum(record, s.minimumWage),
		Compliance: compliance.CheckCompliance(compliance.ComplianceInput{
			BirthDate:     record.BirthDate,
			Salary:        record.Salary,
			HasIDDocument: hasIDDocument,
			MinimumWage:   s.minimumWage,
		}, requesttime.Now(ctx)),
	}, nil
}

// Create validates the submission, stores the employee and, when a job title is
// given, the first profession. Validation failures return *models.RecordInvalidError.
func (s *Service) Create(ctx context.Context, cmd *CreateEmployeeCommand) (_ *models.EmployeeDetail, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEmployeeCreate)
	defer func() { span.End(err) }()

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	outcome := compliance.ValidateEmployeeRecordWithMinimum(cmd.Record(), s.minimumWage)
	span.SetAttributes(tracer.Int(tracer.AttrProblemCount, len(outcome.Problems)))
	if !outcome.OK {
		return nil, s.reject(ctx, outcome)
	}

	now := requesttime.Now(ctx)
	emp, err := models.NewEmployee(id.NewEmployeeID(), cmd.FirstName, cmd.LastName, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid employee")
	}
	emp.BirthDate = parseOptionalDate(cmd.BirthDate)
	emp.Email = cmd.Email
	emp.Phone = cmd.phone(s.countryCode)
	emp.Address = cmd.Address

	if err := s.employees.Create(ctx, emp); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "employee already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
	}
	span.SetAttributes(tracer.String(tracer.AttrEmployeeID, emp.ID.String()))

	var prof *models.Profession
	if cmd.JobTitle != "" {
		prof = newProfession(emp.ID, &cmd.ProfessionFields, now)
		if err := s.professions.Create(ctx, prof); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profession")
		}
		if prof.Department != "" {
			s.invalidateDepartments(ctx)
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementEmployeesCreated()
	}
	s.logger.InfoContext(ctx, "employee created", "employee_id", emp.ID, "has_profession", prof != nil)
	s.publish(ctx, events.EmployeeCreated, emp.ID, now, nil)

	detail := &models.EmployeeDetail{
		Employee:   emp,
		Profession: prof,
		Documents:  []models.Document{},
		Reviews:    []models.Review{},
		Compliance: s.checkCompliance(emp.BirthDate, prof, false, now),
	}
	span.SetAttributes(tracer.Bool(tracer.AttrCompliant, detail.Compliance.AllSatisfied))
	return detail, nil
}

// Get loads an employee with latest profession, documents and reviews, and
// evaluates compliance against the request time.
func (s *Service) Get(ctx context.Context, employeeID id.EmployeeID) (_ *models.EmployeeDetail, err error) {
	if err := requireEmployeeID(employeeID); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanEmployeeDetail,
		tracer.String(tracer.AttrEmployeeID, employeeID.String()),
	)
	defer func() { span.End(err) }()
	if s.metrics != nil {
		defer s.metrics.ObserveDetail(time.Now())
	}

	detail := &models.EmployeeDetail{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		emp, err := s.employees.FindByID(gctx, employeeID)
		if err != nil {
			return wrapEmployeeErr(err, "failed to load employee")
		}
		detail.Employee = emp
		return nil
	})
	g.Go(func() error {
		p, err := s.latestProfession(gctx, employeeID)
		detail.Profession = p
		return err
	})
	g.Go(func() error {
		docs, err := s.documents.ListByEmployee(gctx, employeeID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load documents")
		}
		detail.Documents = docs
		return nil
	})
	g.Go(func() error {
		reviews, err := s.reviews.ListByEmployee(gctx, employeeID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reviews")
		}
		detail.Reviews = reviews
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail.Compliance = s.checkCompliance(detail.Employee.BirthDate, detail.Profession,
		detail.HasDocument(models.DocumentTypeID), requesttime.Now(ctx))
	span.SetAttributes(tracer.Bool(tracer.AttrCompliant, detail.Compliance.AllSatisfied))
	return detail, nil
}

// List returns listing rows for the filter.
func (s *Service) List(ctx context.Context, filter models.ListFilter) (_ []models.EmployeeRow, err error) {
	if err := filter.Normalize(); err != nil {
		return nil, err
	}
	if err := validation.CheckStringLength("search", filter.Search, validation.MaxSearchLength); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanEmployeeList,
		tracer.String(tracer.AttrSortBy, string(filter.SortBy)),
		tracer.String(tracer.AttrActiveFilter, string(filter.Active)),
		tracer.String(tracer.AttrDepartmentName, filter.Department),
	)
	defer func() { span.End(err) }()

	rows, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	if rows == nil {
		rows = []models.EmployeeRow{}
	}
	span.SetAttributes(tracer.Int(tracer.AttrResultCount, len(rows)))
	return rows, nil
}

// Departments returns known department names, read through the cache.
func (s *Service) Departments(ctx context.Context) (_ []string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDepartmentLookup)
	defer func() { span.End(err) }()

	if s.departments != nil {
		cached, err := s.departments.Get(ctx)
		switch {
		case err == nil:
			s.observeCache(span, true)
			return cached, nil
		case !errors.Is(err, sentinel.ErrCacheMiss):
			s.logger.WarnContext(ctx, "department cache read failed", "error", err)
		}
		s.observeCache(span, false)
	}

	departments, err := s.professions.Departments(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list departments")
	}
	if departments == nil {
		departments = []string{}
	}
	if s.departments != nil {
		if err := s.departments.Set(ctx, departments); err != nil {
			s.logger.WarnContext(ctx, "department cache write failed", "error", err)
		}
	}
	return departments, nil
}

func (s *Service) observeCache(span tracer.Span, hit bool) {
	span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, hit))
	if s.metrics != nil {
		s.metrics.ObserveDepartmentCache(hit)
	}
}

// Update replaces the personal fields of an employee. The record is validated
// with the current profession's salary and dates.
func (s *Service) Update(ctx context.Context, employeeID id.EmployeeID, cmd *UpdateEmployeeCommand) (_ *models.Employee, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEmployeeUpdate,
		tracer.String(tracer.AttrEmployeeID, employeeID.String()),
	)
	defer func() { span.End(err) }()

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	emp, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	prof, err := s.latestProfession(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	record := compliance.EmployeeRecord{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		Phone:     cmd.PhoneNumber,
		BirthDate: cmd.BirthDate,
	}
	if prof != nil {
		record.StartDate = models.FormatDate(prof.StartDate)
		record.EndDate = models.FormatDate(prof.EndDate)
		record.Salary = prof.SalaryString()
	}
	outcome := compliance.ValidateEmployeeRecordWithMinimum(record, s.minimumWage)
	if !outcome.OK {
		return nil, s.reject(ctx, outcome)
	}

	now := requesttime.Now(ctx)
	emp.FirstName = cmd.FirstName
	emp.LastName = cmd.LastName
	emp.BirthDate = parseOptionalDate(cmd.BirthDate)
	emp.Email = cmd.Email
	emp.Phone = cmd.phone(s.countryCode)
	emp.Address = cmd.Address
	emp.UpdatedAt = now

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, wrapEmployeeErr(err, "failed to update employee")
	}
	s.publish(ctx, events.EmployeeUpdated, emp.ID, now, nil)
	return emp, nil
}

// Deactivate marks an employee inactive. An already inactive employee is a conflict.
func (s *Service) Deactivate(ctx context.Context, employeeID id.EmployeeID, cmd *DeactivateCommand) (*models.Employee, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	emp, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := requesttime.Now(ctx)
	if err := emp.Deactivate(cmd.Reason, now); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeConflict, "employee is already inactive")
		}
		return nil, err
	}
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, wrapEmployeeErr(err, "failed to update employee")
	}

	if s.metrics != nil {
		s.metrics.IncrementEmployeesDeactivated()
	}
	s.logger.InfoContext(ctx, "employee deactivated", "employee_id", emp.ID, "reason", cmd.Reason)
	s.publish(ctx, events.EmployeeDeactivated, emp.ID, now, map[string]string{"reason": cmd.Reason})
	return emp, nil
}
