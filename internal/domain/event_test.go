package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventHasPassed(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{name: "start in future", event: Event{EventDate: future}, want: false},
		{name: "start in past", event: Event{EventDate: past}, want: true},
		{name: "end date overrides past start", event: Event{EventDate: past, EventEndDate: &future}, want: false},
		{name: "end date in past", event: Event{EventDate: past.Add(-time.Hour), EventEndDate: &past}, want: true},
		{name: "exactly at end is not passed", event: Event{EventDate: now}, want: false},
		{name: "no dates", event: Event{}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.event.HasPassed(now))
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: InvalidEvent("name", "is mandatory"), want: KindInvalidInput},
		{err: EventNotFound(4), want: KindNotFound},
		{err: VenueNotFound(4), want: KindNotFound},
		{err: &EventStateError{EventID: 1, Err: ErrEventInactive}, want: KindInactiveEntity},
		{err: &InsufficientTicketsError{Requested: 5, Available: 2}, want: KindInsufficientInventory},
		{err: &EventStateError{EventID: 1, Err: ErrCapacityExceeded}, want: KindCapacityExceeded},
		{err: &EventStateError{EventID: 1, Err: ErrPastEvent}, want: KindTemporalViolation},
		{err: fmt.Errorf("save event: %w", ErrConcurrentUpdate), want: KindConflict},
		{err: errors.New("connection reset"), want: KindInternal},
		{err: nil, want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, KindOf(tc.err), "error: %v", tc.err)
	}
}

func TestInsufficientTicketsErrorMessage(t *testing.T) {
	err := &InsufficientTicketsError{EventID: 3, Requested: 80, Available: 70}
	assert.Equal(t, "insufficient tickets available. Requested: 80, Available: 70", err.Error())

	soldOut := &InsufficientTicketsError{EventID: 3, Requested: 1, Available: 0}
	assert.Equal(t, "no tickets available for event 3", soldOut.Error())
	assert.ErrorIs(t, soldOut, ErrInsufficientTickets)
}
