package models

import (
	"time"

	id "hrcore/pkg/domain"
)

// DocumentType is the kind of file attached to an employee.
type DocumentType string

const (
	DocumentTypeID DocumentType = "ID"
	DocumentTypeCV DocumentType = "CV"
	// DocumentTypePhoto is accepted on upload but stored on the employee row.
	DocumentTypePhoto DocumentType = "PHOTO"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeID, DocumentTypeCV, DocumentTypePhoto:
		return true
	}
	return false
}

// IsStoredDocument reports whether uploads of this type become document rows.
func (t DocumentType) IsStoredDocument() bool {
	return t == DocumentTypeID || t == DocumentTypeCV
}

type Document struct {
	ID           id.DocumentID
	EmployeeID   id.EmployeeID
	Type         DocumentType
	FilePath     string
	OriginalName string
	UploadedAt   time.Time
}
