package events

import (
	"math"
	"strings"
	"time"

	"boxoffice/internal/domain"
)

// Upper bounds of the total_capacity INTEGER and ticket_price NUMERIC(12,2) columns.
const (
	maxCapacity    = math.MaxInt32
	maxTicketPrice = 9999999999.99
)

func validateID(id int64) error {
	if id <= 0 {
		return domain.InvalidEvent("id", "must be a positive value")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.InvalidEvent("quantity", "must be greater than zero")
	}
	return nil
}

func validateForCreation(event *domain.Event) error {
	if event == nil {
		return domain.InvalidEvent("event", "cannot be null")
	}
	if err := validateBasicFields(event); err != nil {
		return err
	}
	if event.TotalCapacity <= 0 {
		return domain.InvalidEvent("total_capacity", "must be greater than zero")
	}
	if event.TotalCapacity > maxCapacity {
		return domain.InvalidEvent("total_capacity", "is too large")
	}
	if event.VenueID <= 0 {
		return domain.InvalidEvent("venue_id", "is mandatory")
	}
	return nil
}

func validateForUpdate(event *domain.Event) error {
	if event == nil {
		return domain.InvalidEvent("event", "cannot be null")
	}
	return validateBasicFields(event)
}

func validateBasicFields(event *domain.Event) error {
	if strings.TrimSpace(event.Name) == "" {
		return domain.InvalidEvent("name", "is mandatory")
	}
	if event.EventDate.IsZero() {
		return domain.InvalidEvent("event_date", "is mandatory")
	}
	if event.TicketPrice == nil {
		return domain.InvalidEvent("ticket_price", "is mandatory")
	}
	if *event.TicketPrice < 0 {
		return domain.InvalidEvent("ticket_price", "needs to be zero or positive")
	}
	if *event.TicketPrice > maxTicketPrice {
		return domain.InvalidEvent("ticket_price", "is too large")
	}
	return nil
}

// checkSellable applies the sale rules in order. The order decides which
// error a request that breaks several rules gets back.
func checkSellable(event domain.Event, quantity int, now time.Time) error {
	if !event.Active {
		return &domain.EventStateError{EventID: event.ID, Err: domain.ErrEventInactive}
	}
	if event.AvailableTickets <= 0 {
		return &domain.InsufficientTicketsError{EventID: event.ID, Requested: quantity, Available: 0}
	}
	if event.AvailableTickets < quantity {
		return &domain.InsufficientTicketsError{EventID: event.ID, Requested: quantity, Available: event.AvailableTickets}
	}
	if event.HasPassed(now) {
		return &domain.EventStateError{EventID: event.ID, Err: domain.ErrPastEvent}
	}
	return nil
}
