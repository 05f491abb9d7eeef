package domain

import "time"

// Event is a ticketed occurrence with a fixed ticket inventory.
//
// Values are treated as snapshots: operations take one Event and hand back a
// new one, so a failed save never leaves a half-updated copy behind.
type Event struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	EventDate        time.Time  `json:"event_date"`
	EventEndDate     *time.Time `json:"event_end_date,omitempty"`
	Category         string     `json:"category,omitempty"`
	TicketPrice      *float64   `json:"ticket_price"`
	TotalCapacity    int        `json:"total_capacity"`
	AvailableTickets int        `json:"available_tickets"`
	Active           bool       `json:"active"`
	VenueID          int64      `json:"venue_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Version guards concurrent writers; the store bumps it on every save.
	Version int64 `json:"-"`
}

// EffectiveEnd returns the end date when set, otherwise the start date.
func (e Event) EffectiveEnd() time.Time {
	if e.EventEndDate != nil {
		return *e.EventEndDate
	}
	return e.EventDate
}

// HasPassed reports whether now is after the event's effective end.
func (e Event) HasPassed(now time.Time) bool {
	end := e.EffectiveEnd()
	if end.IsZero() {
		return false
	}
	return now.After(end)
}

// SoldTickets is the number of tickets currently out of inventory.
func (e Event) SoldTickets() int {
	return e.TotalCapacity - e.AvailableTickets
}

// EventFilter narrows event listings.
type EventFilter struct {
	VenueID    *int64
	ActiveOnly bool
	// Upcoming keeps events that have not passed at this instant.
	Upcoming *time.Time
	// Search matches name, description or category, case-insensitively.
	Search string
}
