package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"boxoffice/internal/clock"
	"boxoffice/internal/domain"
	"boxoffice/internal/logging"
)

// Store is the storage port for events.
type Store interface {
	SaveEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	// FindEventByID reports ok=false when no event exists; that is not an error.
	FindEventByID(ctx context.Context, id int64) (event domain.Event, ok bool, err error)
	DeleteEventByID(ctx context.Context, id int64) error
	EventExistsByID(ctx context.Context, id int64) (bool, error)
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}

// Service coordinates event inventory operations.
type Service interface {
	Create(ctx context.Context, candidate *domain.Event) (domain.Event, error)
	Update(ctx context.Context, id int64, candidate *domain.Event) (domain.Event, error)
	SellTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error)
	RefundTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Event, error)
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}

type service struct {
	store  Store
	clock  clock.Clock
	logger zerolog.Logger
}

// Option configures the service.
type Option func(*service)

// WithLogger sets the logger used for rejected and completed operations.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New constructs an events Service backed by the provided Store.
func New(store Store, clk clock.Clock, opts ...Option) Service {
	s := &service{
		store:  store,
		clock:  clk,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, candidate *domain.Event) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if err := validateForCreation(candidate); err != nil {
		return domain.Event{}, s.reject(ctx, "create", 0, err)
	}

	now := s.clock.Now()
	event := domain.Event{
		Name:             strings.TrimSpace(candidate.Name),
		Description:      candidate.Description,
		EventDate:        candidate.EventDate,
		EventEndDate:     copyTime(candidate.EventEndDate),
		Category:         candidate.Category,
		TicketPrice:      copyFloat(candidate.TicketPrice),
		TotalCapacity:    candidate.TotalCapacity,
		AvailableTickets: candidate.TotalCapacity,
		Active:           true,
		VenueID:          candidate.VenueID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	saved, err := s.store.SaveEvent(ctx, event)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "create", 0, err)
	}
	s.logger.Debug().
		Int64("event_id", saved.ID).
		Int("total_capacity", saved.TotalCapacity).
		Msg("event created")
	return saved, nil
}

func (s *service) Update(ctx context.Context, id int64, candidate *domain.Event) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if err := validateID(id); err != nil {
		return domain.Event{}, s.reject(ctx, "update", id, err)
	}
	if err := validateForUpdate(candidate); err != nil {
		return domain.Event{}, s.reject(ctx, "update", id, err)
	}

	existing, err := s.load(ctx, id)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "update", id, err)
	}

	updated := existing
	updated.Name = strings.TrimSpace(candidate.Name)
	updated.Description = candidate.Description
	updated.EventDate = candidate.EventDate
	updated.EventEndDate = copyTime(candidate.EventEndDate)
	updated.Category = candidate.Category
	updated.TicketPrice = copyFloat(candidate.TicketPrice)
	updated.UpdatedAt = s.clock.Now()

	saved, err := s.store.SaveEvent(ctx, updated)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "update", id, err)
	}
	return saved, nil
}

func (s *service) SellTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if err := validateQuantity(quantity); err != nil {
		return domain.Event{}, s.reject(ctx, "sell", eventID, err)
	}
	if err := validateID(eventID); err != nil {
		return domain.Event{}, s.reject(ctx, "sell", eventID, err)
	}

	event, err := s.load(ctx, eventID)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "sell", eventID, err)
	}

	now := s.clock.Now()
	if err := checkSellable(event, quantity, now); err != nil {
		return domain.Event{}, s.reject(ctx, "sell", eventID, err)
	}

	sold := event
	sold.AvailableTickets = event.AvailableTickets - quantity
	sold.UpdatedAt = now

	saved, err := s.store.SaveEvent(ctx, sold)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "sell", eventID, err)
	}
	s.logger.Debug().
		Int64("event_id", eventID).
		Int("quantity", quantity).
		Int("available_tickets", saved.AvailableTickets).
		Msg("tickets sold")
	return saved, nil
}

func (s *service) RefundTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if err := validateQuantity(quantity); err != nil {
		return domain.Event{}, s.reject(ctx, "refund", eventID, err)
	}
	if err := validateID(eventID); err != nil {
		return domain.Event{}, s.reject(ctx, "refund", eventID, err)
	}

	event, err := s.load(ctx, eventID)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "refund", eventID, err)
	}

	// Refunds ignore the active flag and the event date. Compared against the
	// headroom so a huge quantity cannot wrap the sum.
	if quantity > event.TotalCapacity-event.AvailableTickets {
		return domain.Event{}, s.reject(ctx, "refund", eventID,
			&domain.EventStateError{EventID: eventID, Err: domain.ErrCapacityExceeded})
	}

	refunded := event
	refunded.AvailableTickets = event.AvailableTickets + quantity
	refunded.UpdatedAt = s.clock.Now()

	saved, err := s.store.SaveEvent(ctx, refunded)
	if err != nil {
		return domain.Event{}, s.fail(ctx, "refund", eventID, err)
	}
	s.logger.Debug().
		Int64("event_id", eventID).
		Int("quantity", quantity).
		Int("available_tickets", saved.AvailableTickets).
		Msg("tickets refunded")
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return s.reject(ctx, "delete", id, err)
	}

	exists, err := s.store.EventExistsByID(ctx, id)
	if err != nil {
		return s.fail(ctx, "delete", id, fmt.Errorf("check event: %w", err))
	}
	if !exists {
		return s.reject(ctx, "delete", id, domain.EventNotFound(id))
	}

	if err := s.store.DeleteEventByID(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, fmt.Errorf("delete event: %w", err))
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if err := validateID(id); err != nil {
		return domain.Event{}, err
	}
	return s.load(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter.VenueID != nil {
		if err := validateID(*filter.VenueID); err != nil {
			return nil, err
		}
	}
	return s.store.ListEvents(ctx, filter)
}

func (s *service) load(ctx context.Context, id int64) (domain.Event, error) {
	event, ok, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("find event: %w", err)
	}
	if !ok {
		return domain.Event{}, domain.EventNotFound(id)
	}
	return event, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// reject logs a business-rule rejection and returns err unchanged.
func (s *service) reject(ctx context.Context, op string, eventID int64, err error) error {
	l := logging.WithContext(ctx, s.logger)
	l.Warn().
		Str("op", op).
		Int64("event_id", eventID).
		Str("kind", string(domain.KindOf(err))).
		Err(err).
		Msg("event operation rejected")
	return err
}

// fail logs storage failures at error level; domain errors go through reject.
func (s *service) fail(ctx context.Context, op string, eventID int64, err error) error {
	if kind := domain.KindOf(err); kind != domain.KindInternal {
		return s.reject(ctx, op, eventID, err)
	}
	l := logging.WithContext(ctx, s.logger)
	l.Error().
		Str("op", op).
		Int64("event_id", eventID).
		Err(err).
		Msg("event operation failed")
	return err
}
