package compliance

// DefaultMinimumWage is the salary floor applied to employee records.
const DefaultMinimumWage = 600

// EmployeeRecord is the flat set of candidate values submitted for an employee.
// An empty string means the value was not supplied.
type EmployeeRecord struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	BirthDate string `json:"birth_date" yaml:"birth_date"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
	Salary    string `json:"salary" yaml:"salary"`
}

// ValidateEmployeeRecord runs every field check in a fixed order and reports all
// problems at once. It never stops at the first failure.
func ValidateEmployeeRecord(r EmployeeRecord) ValidationOutcome {
	return ValidateEmployeeRecordWithMinimum(r, DefaultMinimumWage)
}

// ValidateEmployeeRecordWithMinimum is ValidateEmployeeRecord with a configured
// salary floor. A non-positive minimum falls back to DefaultMinimumWage.
func ValidateEmployeeRecordWithMinimum(r EmployeeRecord, minimumWage float64) ValidationOutcome {
	if minimumWage <= 0 {
		minimumWage = DefaultMinimumWage
	}
	return newOutcome(
		CheckRequired(r.FirstName, FieldFirstName),
		CheckRequired(r.LastName, FieldLastName),
		CheckEmail(r.Email),
		CheckPhone(r.Phone),
		CheckDateSyntax(r.BirthDate, FieldBirthDate),
		CheckDateSyntax(r.StartDate, FieldStartDate),
		CheckDateSyntax(r.EndDate, FieldEndDate),
		CheckDateRange(r.StartDate, r.EndDate),
		CheckSalary(r.Salary, minimumWage),
	)
}

// ValidateProfessionFields runs the date, range and salary checks of the record
// validator on their own, in the same order.
func ValidateProfessionFields(startDate, endDate, salary string, minimumWage float64) ValidationOutcome {
	if minimumWage <= 0 {
		minimumWage = DefaultMinimumWage
	}
	return newOutcome(
		CheckDateSyntax(startDate, FieldStartDate),
		CheckDateSyntax(endDate, FieldEndDate),
		CheckDateRange(startDate, endDate),
		CheckSalary(salary, minimumWage),
	)
}
