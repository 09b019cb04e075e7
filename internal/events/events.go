// Package events publishes employee lifecycle events.
//
// Publishing is fire-and-forget: a failed publish is logged and counted but never
// fails the operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	id "hrcore/pkg/domain"
)

// Type names a lifecycle event.
type Type string

const (
	EmployeeCreated     Type = "employee.created"
	EmployeeUpdated     Type = "employee.updated"
	EmployeeDeactivated Type = "employee.deactivated"
	ProfessionUpdated   Type = "profession.updated"
	DocumentUploaded    Type = "document.uploaded"
	DocumentDeleted     Type = "document.deleted"
	ReviewAdded         Type = "review.added"
	TimesheetCreated    Type = "timesheet.created"
	TimesheetUpdated    Type = "timesheet.updated"
)

// Event is the payload written to the lifecycle topic.
type Event struct {
	Type       Type              `json:"type"`
	EmployeeID string            `json:"employee_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	RequestID  string            `json:"request_id,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
}

// New builds an event for an employee.
func New(t Type, employeeID id.EmployeeID, occurredAt time.Time, data map[string]string) Event {
	return Event{
		Type:       t,
		EmployeeID: employeeID.String(),
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}
}

// Publisher emits lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Decode parses an event value read from the lifecycle topic.
func Decode(value []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(value, &e); err != nil {
		return Event{}, fmt.Errorf("decode lifecycle event: %w", err)
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("decode lifecycle event: missing type")
	}
	return e, nil
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in publish order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []Type {
	evs := r.Events()
	out := make([]Type, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

var (
	_ Publisher = Noop{}
	_ Publisher = (*Recorder)(nil)
)
