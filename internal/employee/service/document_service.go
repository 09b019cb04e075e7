package service

import (
	"context"

	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	"hrcore/internal/platform/tracer"
	"hrcore/internal/upload"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
)

// UploadDocument stores a file for an employee. A photo replaces the employee's
// photo and removes the previous file; ID and CV files become document rows.
func (s *Service) UploadDocument(ctx context.Context, cmd *UploadDocumentCommand) (_ *UploadResult, err error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanDocumentUpload,
		tracer.String(tracer.AttrEmployeeID, cmd.EmployeeID.String()),
		tracer.String(tracer.AttrDocumentType, string(cmd.Type)),
	)
	defer func() { span.End(err) }()

	emp, err := s.loadEmployee(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}

	kind := upload.KindDocument
	if cmd.Type == models.DocumentTypePhoto {
		kind = upload.KindPhoto
	}
	path, err := s.files.Save(ctx, kind, emp.ID, cmd.FileName, cmd.Content)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store file")
	}
	span.AddEvent(tracer.EventFileStored, tracer.String("path", path))

	now := requesttime.Now(ctx)
	result := &UploadResult{Type: cmd.Type, Path: path}
	if cmd.Type == models.DocumentTypePhoto {
		previous := emp.SetPhoto(path, now)
		if err := s.employees.Update(ctx, emp); err != nil {
			s.discardFile(ctx, path)
			return nil, wrapEmployeeErr(err, "failed to update employee photo")
		}
		if previous != "" {
			s.discardFile(ctx, previous)
		}
	} else {
		doc := &models.Document{
			ID:           id.NewDocumentID(),
			EmployeeID:   emp.ID,
			Type:         cmd.Type,
			FilePath:     path,
			OriginalName: cmd.FileName,
			UploadedAt:   now,
		}
		if err := s.documents.Create(ctx, doc); err != nil {
			s.discardFile(ctx, path)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save document")
		}
		result.Document = doc
	}

	if s.metrics != nil {
		s.metrics.IncrementDocumentsUploaded(string(cmd.Type))
	}
	s.publish(ctx, events.DocumentUploaded, emp.ID, now, map[string]string{
		"document_type": string(cmd.Type),
		"path":          path,
	})
	return result, nil
}

// DeleteDocument removes a document row and its file. The document must belong
// to the employee.
func (s *Service) DeleteDocument(ctx context.Context, employeeID id.EmployeeID, documentID id.DocumentID) error {
	if err := requireEmployeeID(employeeID); err != nil {
		return err
	}
	if err := requireDocumentID(documentID); err != nil {
		return err
	}
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return wrapDocumentErr(err, "failed to load document")
	}
	if doc.EmployeeID != employeeID {
		return dErrors.New(dErrors.CodeNotFound, "document not found")
	}
	if err := s.documents.Delete(ctx, documentID); err != nil {
		return wrapDocumentErr(err, "failed to delete document")
	}
	s.discardFile(ctx, doc.FilePath)

	s.publish(ctx, events.DocumentDeleted, employeeID, requesttime.Now(ctx), map[string]string{
		"document_type": string(doc.Type),
	})
	return nil
}

func (s *Service) discardFile(ctx context.Context, path string) {
	if err := s.files.Delete(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "failed to delete stored file", "path", path, "error", err)
	}
}
