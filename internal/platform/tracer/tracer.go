// Package tracer provides a lightweight tracing abstraction for service operations.
//
// Services depend on the Tracer interface rather than OpenTelemetry directly, so
// tests run with NoopTracer and production wires OTelTracer against the global
// provider.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span. The returned context carries the span and should
	// be passed to child operations.
	//
	// Example:
	//   ctx, span := t.Start(ctx, tracer.SpanEmployeeDetail,
	//       tracer.String(tracer.AttrEmployeeID, id.String()),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanEmployeeCreate   = "employee.create"
	SpanEmployeeDetail   = "employee.detail"
	SpanEmployeeList     = "employee.list"
	SpanEmployeeUpdate   = "employee.update"
	SpanDocumentUpload   = "employee.document.upload"
	SpanReviewAdd        = "employee.review.add"
	SpanDepartmentLookup = "employee.departments"
	SpanTimesheetSave    = "timesheet.save"
)

// Attribute keys.
const (
	AttrEmployeeID     = "employee.id"
	AttrTimesheetID    = "timesheet.id"
	AttrDocumentType   = "document.type"
	AttrResultCount    = "result.count"
	AttrCacheHit       = "cache.hit"
	AttrProblemCount   = "validation.problems"
	AttrCompliant      = "compliance.all_satisfied"
	AttrReviewMetrics  = "review.metrics"
	AttrSortBy         = "list.sort_by"
	AttrActiveFilter   = "list.active"
	AttrDepartmentName = "list.department"
)

// Event names.
const (
	EventEventPublished = "event.published"
	EventFileStored     = "file.stored"
)
