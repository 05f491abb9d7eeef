package main

import (
	"context"
	"fmt"
	"time"

	"boxoffice/internal/app/events"
	"boxoffice/internal/app/venues"
	"boxoffice/internal/clock"
	"boxoffice/internal/domain"
	"boxoffice/internal/logging"
)

// bootstrapDemoData creates one venue and a few events when no venue exists yet.
func bootstrapDemoData(ctx context.Context, eventStore events.Store, venueStore venues.Store, logger *logging.Logger) error {
	existing, err := venueStore.ListVenues(ctx)
	if err != nil {
		return fmt.Errorf("check demo venues: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	clk := clock.NewSystem()
	venueSvc := venues.New(venueStore, clk)
	eventSvc := events.New(eventStore, clk)

	capacity := 1200
	venue, err := venueSvc.Create(ctx, &domain.Venue{
		Name:       "Teatro Metropolitano",
		Address:    "Calle 41 #57-30",
		City:       "Medellín",
		Country:    "Colombia",
		Capacity:   &capacity,
		Type:       "theater",
		Facilities: "parking, accessible seating",
	})
	if err != nil {
		return fmt.Errorf("bootstrap demo venue: %w", err)
	}

	floatPtr := func(v float64) *float64 { return &v }
	now := clk.Now()

	seeds := []domain.Event{
		{
			Name:          "Orquesta Filarmónica: Season Opening",
			Description:   "Beethoven 9",
			EventDate:     now.Add(14 * 24 * time.Hour),
			Category:      "classical",
			TicketPrice:   floatPtr(85),
			TotalCapacity: 1200,
		},
		{
			Name:          "Jazz al Parque Warm-up",
			EventDate:     now.Add(30 * 24 * time.Hour),
			Category:      "jazz",
			TicketPrice:   floatPtr(40),
			TotalCapacity: 300,
		},
		{
			Name:          "Community Open Day",
			EventDate:     now.Add(7 * 24 * time.Hour),
			Category:      "community",
			TicketPrice:   floatPtr(0),
			TotalCapacity: 500,
		},
	}

	for i := range seeds {
		seed := seeds[i]
		seed.VenueID = venue.ID
		if _, err := eventSvc.Create(ctx, &seed); err != nil {
			return fmt.Errorf("bootstrap demo event %q: %w", seed.Name, err)
		}
	}

	logger.InfoEvent().
		Int64("venue_id", venue.ID).
		Int("events", len(seeds)).
		Msg("demo data seeded")
	return nil
}
