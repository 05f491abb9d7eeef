package venues

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"boxoffice/internal/clock"
	"boxoffice/internal/domain"
	"boxoffice/internal/logging"
)

// Store is the storage port for venues.
type Store interface {
	SaveVenue(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	FindVenueByID(ctx context.Context, id int64) (venue domain.Venue, ok bool, err error)
	DeleteVenueByID(ctx context.Context, id int64) error
	VenueExistsByID(ctx context.Context, id int64) (bool, error)
	ListVenues(ctx context.Context) ([]domain.Venue, error)
}

// Service manages venues.
type Service interface {
	Create(ctx context.Context, candidate *domain.Venue) (domain.Venue, error)
	Update(ctx context.Context, id int64, candidate *domain.Venue) (domain.Venue, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
}

type service struct {
	store  Store
	clock  clock.Clock
	logger zerolog.Logger
}

// Option configures the service.
type Option func(*service)

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New constructs a venues Service.
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

func (s *service) Create(ctx context.Context, candidate *domain.Venue) (domain.Venue, error) {
	if err := validateForCreation(candidate); err != nil {
		s.warn(ctx, "create", 0, err)
		return domain.Venue{}, err
	}

	now := s.clock.Now()
	venue := domain.Venue{
		Name:       strings.TrimSpace(candidate.Name),
		Address:    strings.TrimSpace(candidate.Address),
		City:       strings.TrimSpace(candidate.City),
		Country:    strings.TrimSpace(candidate.Country),
		Capacity:   copyInt(candidate.Capacity),
		Type:       candidate.Type,
		Facilities: candidate.Facilities,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	saved, err := s.store.SaveVenue(ctx, venue)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("save venue: %w", err)
	}
	return saved, nil
}

func (s *service) Update(ctx context.Context, id int64, candidate *domain.Venue) (domain.Venue, error) {
	if err := validateID(id); err != nil {
		return domain.Venue{}, err
	}
	if err := validateForUpdate(candidate); err != nil {
		s.warn(ctx, "update", id, err)
		return domain.Venue{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Venue{}, err
	}

	existing.Name = strings.TrimSpace(candidate.Name)
	existing.Address = strings.TrimSpace(candidate.Address)
	existing.City = strings.TrimSpace(candidate.City)
	existing.Country = strings.TrimSpace(candidate.Country)
	existing.Capacity = copyInt(candidate.Capacity)
	existing.Type = candidate.Type
	existing.Facilities = candidate.Facilities
	existing.UpdatedAt = s.clock.Now()

	saved, err := s.store.SaveVenue(ctx, existing)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("save venue: %w", err)
	}
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	exists, err := s.store.VenueExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check venue: %w", err)
	}
	if !exists {
		return domain.VenueNotFound(id)
	}

	if err := s.store.DeleteVenueByID(ctx, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Venue, error) {
	if err := validateID(id); err != nil {
		return domain.Venue{}, err
	}

	venue, ok, err := s.store.FindVenueByID(ctx, id)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("find venue: %w", err)
	}
	if !ok {
		return domain.Venue{}, domain.VenueNotFound(id)
	}
	return venue, nil
}

func (s *service) List(ctx context.Context) ([]domain.Venue, error) {
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (s *service) warn(ctx context.Context, op string, id int64, err error) {
	l := logging.WithContext(ctx, s.logger)
	l.Warn().Str("op", op).Int64("venue_id", id).Err(err).Msg("venue rejected")
}

func validateID(id int64) error {
	if id <= 0 {
		return domain.InvalidVenue("id", "must be a positive value")
	}
	return nil
}

func validateForCreation(venue *domain.Venue) error {
	if venue == nil {
		return domain.InvalidVenue("venue", "cannot be null")
	}
	if err := validateBasicFields(venue); err != nil {
		return err
	}
	if venue.Capacity == nil || *venue.Capacity <= 0 {
		return domain.InvalidVenue("capacity", "must be greater than zero")
	}
	if *venue.Capacity > math.MaxInt32 {
		return domain.InvalidVenue("capacity", "is too large")
	}
	return nil
}

func validateForUpdate(venue *domain.Venue) error {
	if venue == nil {
		return domain.InvalidVenue("venue", "cannot be null")
	}
	if err := validateBasicFields(venue); err != nil {
		return err
	}
	if venue.Capacity != nil && *venue.Capacity <= 0 {
		return domain.InvalidVenue("capacity", "must be greater than zero")
	}
	if venue.Capacity != nil && *venue.Capacity > math.MaxInt32 {
		return domain.InvalidVenue("capacity", "is too large")
	}
	return nil
}

func validateBasicFields(venue *domain.Venue) error {
	required := []struct {
		field string
		value string
	}{
		{"name", venue.Name},
		{"address", venue.Address},
		{"city", venue.City},
		{"country", venue.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.InvalidVenue(r.field, "is mandatory")
		}
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
