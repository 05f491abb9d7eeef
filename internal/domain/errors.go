package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers malformed ids, quantities and missing or out-of-range fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEventNotFound signals no event exists for the given id.
	ErrEventNotFound = errors.New("event not found")
	// ErrVenueNotFound signals no venue exists for the given id.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrEventInactive rejects sales against a deactivated event.
	ErrEventInactive = errors.New("event is inactive")
	// ErrInsufficientTickets rejects sales larger than the remaining availability.
	ErrInsufficientTickets = errors.New("insufficient tickets")
	// ErrCapacityExceeded rejects refunds that would push availability above capacity.
	ErrCapacityExceeded = errors.New("refund exceeds total capacity of the event")
	// ErrPastEvent rejects sales after the event's effective end.
	ErrPastEvent = errors.New("event has already passed")
	// ErrConcurrentUpdate signals the stored row changed between read and write.
	ErrConcurrentUpdate = errors.New("event was modified concurrently")
)

// Kind tags an error with the category the transport layer maps to a response.
type Kind string

const (
	KindInvalidInput          Kind = "invalid_input"
	KindNotFound              Kind = "not_found"
	KindInactiveEntity        Kind = "inactive_entity"
	KindInsufficientInventory Kind = "insufficient_inventory"
	KindCapacityExceeded      Kind = "capacity_exceeded"
	KindTemporalViolation     Kind = "temporal_violation"
	KindConflict              Kind = "conflict"
	KindInternal              Kind = "internal"
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrVenueNotFound):
		return KindNotFound
	case errors.Is(err, ErrEventInactive):
		return KindInactiveEntity
	case errors.Is(err, ErrInsufficientTickets):
		return KindInsufficientInventory
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrPastEvent):
		return KindTemporalViolation
	case errors.Is(err, ErrConcurrentUpdate):
		return KindConflict
	default:
		return KindInternal
	}
}

// ValidationError names the offending field and why it was rejected.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s data for field '%s': %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidEvent builds a ValidationError for an event field.
func InvalidEvent(field, reason string) *ValidationError {
	return &ValidationError{Entity: "event", Field: field, Reason: reason}
}

// InvalidVenue builds a ValidationError for a venue field.
func InvalidVenue(field, reason string) *ValidationError {
	return &ValidationError{Entity: "venue", Field: field, Reason: reason}
}

// NotFoundError carries the id that could not be resolved.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Entity == "venue" {
		return ErrVenueNotFound
	}
	return ErrEventNotFound
}

// EventNotFound builds a NotFoundError for an event id.
func EventNotFound(id int64) *NotFoundError {
	return &NotFoundError{Entity: "event", ID: id}
}

// VenueNotFound builds a NotFoundError for a venue id.
func VenueNotFound(id int64) *NotFoundError {
	return &NotFoundError{Entity: "venue", ID: id}
}

// InsufficientTicketsError reports how many tickets were asked for and how many remain.
type InsufficientTicketsError struct {
	EventID   int64
	Requested int
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	if e.Available <= 0 {
		return fmt.Sprintf("no tickets available for event %d", e.EventID)
	}
	return fmt.Sprintf("insufficient tickets available. Requested: %d, Available: %d", e.Requested, e.Available)
}

func (e *InsufficientTicketsError) Unwrap() error {
	return ErrInsufficientTickets
}

// EventStateError ties a state-based rejection (inactive, past, capacity) to an event id.
type EventStateError struct {
	EventID int64
	Err     error
}

func (e *EventStateError) Error() string {
	return fmt.Sprintf("%v (event %d)", e.Err, e.EventID)
}

func (e *EventStateError) Unwrap() error {
	return e.Err
}
