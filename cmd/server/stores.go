package main

import (
	"database/sql"

	"hrcore/internal/employee/service"
	documentstore "hrcore/internal/employee/store/document"
	employeestore "hrcore/internal/employee/store/employee"
	professionstore "hrcore/internal/employee/store/profession"
	reviewstore "hrcore/internal/employee/store/review"
	"hrcore/internal/seeder"
	timesheetservice "hrcore/internal/timesheet/service"
	timesheetstore "hrcore/internal/timesheet/store/timesheet"
)

// employeeStore is what the employee service, timesheet directory and seeder
// need from one employee store.
type employeeStore interface {
	service.EmployeeStore
	timesheetservice.EmployeeDirectory
}

type stores struct {
	employees   employeeStore
	professions service.ProfessionStore
	documents   service.DocumentStore
	reviews     service.ReviewStore
	timesheets  timesheetservice.Store
}

func (s stores) seeder() (seeder.EmployeeStore, seeder.ProfessionStore, seeder.TimesheetStore) {
	return s.employees, s.professions, s.timesheets
}

// newStores selects Postgres stores when db is set and in-memory stores otherwise.
func newStores(db *sql.DB) stores {
	if db != nil {
		return stores{
			employees:   employeestore.NewPostgres(db),
			professions: professionstore.NewPostgres(db),
			documents:   documentstore.NewPostgres(db),
			reviews:     reviewstore.NewPostgres(db),
			timesheets:  timesheetstore.NewPostgres(db),
		}
	}

	professions := professionstore.NewInMemory()
	documents := documentstore.NewInMemory()
	employees := employeestore.NewInMemory(employeestore.WithJoins(professions, documents))
	return stores{
		employees:   employees,
		professions: professions,
		documents:   documents,
		reviews:     reviewstore.NewInMemory(),
		timesheets:  timesheetstore.NewInMemory(timesheetstore.WithEmployees(employees)),
	}
}
