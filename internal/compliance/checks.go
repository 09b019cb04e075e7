package compliance

import (
	"fmt"
	"time"

	"hrcore/pkg/domain"
)

// ComplianceInput carries the values the compliance checks need.
// A non-positive MinimumWage selects DefaultMinimumWage.
type ComplianceInput struct {
	BirthDate     string
	Salary        string
	HasIDDocument bool
	MinimumWage   float64
}

// CheckAge verifies the employee is at least 18 years old as of now.
func CheckAge(birthDate string, now time.Time) ComplianceFinding {
	if isAbsent(birthDate) {
		return ComplianceFinding{
			Category: CategoryAge,
			Message:  "Birth date is required to verify age compliance",
		}
	}
	birth, ok := ParseDate(birthDate)
	if !ok {
		return ComplianceFinding{
			Category: CategoryAge,
			Message:  "Birth date is invalid; cannot verify age compliance",
		}
	}

	age := domain.AgeOn(birth, now)
	if !domain.IsOver18(birth, now) {
		return ComplianceFinding{
			Category: CategoryAge,
			Message:  fmt.Sprintf("Employee is %d years old. Must be at least %d years old.", age, domain.AdultAge),
		}
	}
	return ComplianceFinding{
		Category:  CategoryAge,
		Message:   fmt.Sprintf("Employee is %d years old (compliant)", age),
		Satisfied: true,
	}
}

// CheckMinimumWage verifies salary is at least minimumWage.
// Missing and non-numeric salaries get distinct messages.
func CheckMinimumWage(salary string, minimumWage float64) ComplianceFinding {
	if isAbsent(salary) {
		return ComplianceFinding{
			Category: CategorySalary,
			Message:  "Salary is required to verify minimum wage compliance",
		}
	}
	n, ok := ParseAmount(salary)
	if !ok {
		return ComplianceFinding{Category: CategorySalary, Message: "Invalid salary value"}
	}
	if n < minimumWage {
		return ComplianceFinding{
			Category: CategorySalary,
			Message:  fmt.Sprintf("Salary is $%s. Minimum wage is $%s.", FormatAmount(n), FormatAmount(minimumWage)),
		}
	}
	return ComplianceFinding{
		Category:  CategorySalary,
		Message:   fmt.Sprintf("Salary is $%s (compliant)", FormatAmount(n)),
		Satisfied: true,
	}
}

// CheckIDDocument verifies an identity document is on file or being uploaded.
func CheckIDDocument(hasIDDocument bool) ComplianceFinding {
	if !hasIDDocument {
		return ComplianceFinding{
			Category: CategoryIDDocument,
			Message:  "ID document is required for compliance",
		}
	}
	return ComplianceFinding{
		Category:  CategoryIDDocument,
		Message:   "ID document uploaded (compliant)",
		Satisfied: true,
	}
}

// CheckCompliance evaluates age, salary and ID document in that order.
func CheckCompliance(in ComplianceInput, now time.Time) ComplianceOutcome {
	minimum := in.MinimumWage
	if minimum <= 0 {
		minimum = DefaultMinimumWage
	}

	findings := [3]ComplianceFinding{
		CheckAge(in.BirthDate, now),
		CheckMinimumWage(in.Salary, minimum),
		CheckIDDocument(in.HasIDDocument),
	}
	all := true
	for _, f := range findings {
		all = all && f.Satisfied
	}
	return ComplianceOutcome{AllSatisfied: all, Findings: findings}
}
