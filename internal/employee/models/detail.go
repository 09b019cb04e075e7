package models

import (
	"hrcore/internal/compliance"
)

// EmployeeDetail aggregates everything shown on an employee page.
type EmployeeDetail struct {
	Employee   *Employee
	Profession *Profession
	Documents  []Document
	Reviews    []Review
	Compliance compliance.ComplianceOutcome
}

// HasDocument reports whether any document of type t is attached.
func (d *EmployeeDetail) HasDocument(t DocumentType) bool {
	for _, doc := range d.Documents {
		if doc.Type == t {
			return true
		}
	}
	return false
}

// RecordInvalidError is returned when submitted employee values fail record
// validation. It carries every problem found.
type RecordInvalidError struct {
	Outcome compliance.ValidationOutcome
}

func (e *RecordInvalidError) Error() string {
	return "employee record is invalid"
}
