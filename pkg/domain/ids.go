// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "hrcore/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing EmployeeID where TimesheetID is expected.
type (
	EmployeeID   uuid.UUID
	ProfessionID uuid.UUID
	DocumentID   uuid.UUID
	ReviewID     uuid.UUID
	TimesheetID  uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, CLI flags, fixtures).

func ParseEmployeeID(s string) (EmployeeID, error) {
	id, err := parseUUID(s, "employee ID")
	return EmployeeID(id), err
}

func ParseProfessionID(s string) (ProfessionID, error) {
	id, err := parseUUID(s, "profession ID")
	return ProfessionID(id), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	id, err := parseUUID(s, "document ID")
	return DocumentID(id), err
}

func ParseReviewID(s string) (ReviewID, error) {
	id, err := parseUUID(s, "review ID")
	return ReviewID(id), err
}

func ParseTimesheetID(s string) (TimesheetID, error) {
	id, err := parseUUID(s, "timesheet ID")
	return TimesheetID(id), err
}

// New constructors - used by services when creating records.

func NewEmployeeID() EmployeeID     { return EmployeeID(uuid.New()) }
func NewProfessionID() ProfessionID { return ProfessionID(uuid.New()) }
func NewDocumentID() DocumentID     { return DocumentID(uuid.New()) }
func NewReviewID() ReviewID         { return ReviewID(uuid.New()) }
func NewTimesheetID() TimesheetID   { return TimesheetID(uuid.New()) }

func (id EmployeeID) String() string   { return uuid.UUID(id).String() }
func (id ProfessionID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string   { return uuid.UUID(id).String() }
func (id ReviewID) String() string     { return uuid.UUID(id).String() }
func (id TimesheetID) String() string  { return uuid.UUID(id).String() }

func (id EmployeeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ProfessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ReviewID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TimesheetID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Nil UUIDs parse successfully; services reject them with IsNil so store lookups
// keep returning not-found for well-formed but unknown IDs.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+label+" format")
	}
	return id, nil
}
