package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"boxoffice/internal/domain"
)

// Store keeps events and venues in process memory. Saves use the same
// version check as the Postgres store so concurrent writers are detected.
type Store struct {
	mu          sync.RWMutex
	events      map[int64]domain.Event
	venues      map[int64]domain.Venue
	nextEventID int64
	nextVenueID int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		events:      make(map[int64]domain.Event),
		venues:      make(map[int64]domain.Venue),
		nextEventID: 1,
		nextVenueID: 1,
	}
}

// SaveEvent inserts when event.ID is zero and otherwise replaces the stored
// row if its version still matches.
func (s *Store) SaveEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == 0 {
		event.ID = s.nextEventID
		s.nextEventID++
		event.Version = 1
		s.events[event.ID] = cloneEvent(event)
		return cloneEvent(event), nil
	}

	existing, ok := s.events[event.ID]
	if !ok {
		return domain.Event{}, domain.EventNotFound(event.ID)
	}
	if existing.Version != event.Version {
		return domain.Event{}, domain.ErrConcurrentUpdate
	}

	event.Version++
	s.events[event.ID] = cloneEvent(event)
	return cloneEvent(event), nil
}

// FindEventByID returns the event and whether it exists.
func (s *Store) FindEventByID(_ context.Context, id int64) (domain.Event, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, false, nil
	}
	return cloneEvent(event), true, nil
}

// DeleteEventByID removes an event. Missing ids are ignored.
func (s *Store) DeleteEventByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
	return nil
}

// EventExistsByID reports whether an event is stored under id.
func (s *Store) EventExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.events[id]
	return ok, nil
}

// ListEvents returns events matching filter ordered by event date, then id.
func (s *Store) ListEvents(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]domain.Event, 0, len(s.events))
	for _, event := range s.events {
		if filter.VenueID != nil && event.VenueID != *filter.VenueID {
			continue
		}
		if filter.ActiveOnly && !event.Active {
			continue
		}
		if filter.Upcoming != nil && event.HasPassed(*filter.Upcoming) {
			continue
		}
		if needle != "" && !matches(event, needle) {
			continue
		}
		result = append(result, cloneEvent(event))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].EventDate.Equal(result[j].EventDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].EventDate.Before(result[j].EventDate)
	})
	return result, nil
}

// SaveVenue inserts when venue.ID is zero and otherwise replaces the stored venue.
func (s *Store) SaveVenue(_ context.Context, venue domain.Venue) (domain.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venue.ID == 0 {
		venue.ID = s.nextVenueID
		s.nextVenueID++
	} else if _, ok := s.venues[venue.ID]; !ok {
		return domain.Venue{}, domain.VenueNotFound(venue.ID)
	}

	s.venues[venue.ID] = cloneVenue(venue)
	return cloneVenue(venue), nil
}

// FindVenueByID returns the venue and whether it exists.
func (s *Store) FindVenueByID(_ context.Context, id int64) (domain.Venue, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venue, ok := s.venues[id]
	if !ok {
		return domain.Venue{}, false, nil
	}
	return cloneVenue(venue), true, nil
}

// DeleteVenueByID removes a venue. Missing ids are ignored.
func (s *Store) DeleteVenueByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.venues, id)
	return nil
}

// VenueExistsByID reports whether a venue is stored under id.
func (s *Store) VenueExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.venues[id]
	return ok, nil
}

// ListVenues returns every venue ordered by name.
func (s *Store) ListVenues(_ context.Context) ([]domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Venue, 0, len(s.venues))
	for _, venue := range s.venues {
		result = append(result, cloneVenue(venue))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func matches(event domain.Event, needle string) bool {
	for _, field := range []string{event.Name, event.Description, event.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func cloneEvent(src domain.Event) domain.Event {
	clone := src
	if src.EventEndDate != nil {
		end := *src.EventEndDate
		clone.EventEndDate = &end
	}
	if src.TicketPrice != nil {
		price := *src.TicketPrice
		clone.TicketPrice = &price
	}
	return clone
}

func cloneVenue(src domain.Venue) domain.Venue {
	clone := src
	if src.Capacity != nil {
		capacity := *src.Capacity
		clone.Capacity = &capacity
	}
	return clone
}
