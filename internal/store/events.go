package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"boxoffice/internal/domain"
)

const eventColumns = `id, name, description, event_date, event_end_date, category,
		ticket_price, total_capacity, available_tickets, active, venue_id,
		created_at, updated_at, version`

// SaveEvent inserts a new event when event.ID is zero. Existing events are
// updated only if the stored version still equals event.Version.
func (s *Store) SaveEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.ID == 0 {
		return s.insertEvent(ctx, event)
	}
	return s.updateEvent(ctx, event)
}

func (s *Store) insertEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	query := `
		INSERT INTO events (name, description, event_date, event_end_date, category,
		                    ticket_price, total_capacity, available_tickets, active,
		                    venue_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, version
	`

	err := s.db.QueryRowContext(ctx, query,
		event.Name, event.Description, event.EventDate, event.EventEndDate, event.Category,
		event.TicketPrice, event.TotalCapacity, event.AvailableTickets, event.Active,
		event.VenueID, event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID, &event.Version)
	if err != nil {
		return domain.Event{}, fmt.Errorf("insert event: %w", translate("event", err))
	}
	return event, nil
}

func (s *Store) updateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	query := `
		UPDATE events
		SET name = $1, description = $2, event_date = $3, event_end_date = $4,
		    category = $5, ticket_price = $6, total_capacity = $7,
		    available_tickets = $8, active = $9, venue_id = $10, updated_at = $11,
		    version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING version
	`

	err := s.db.QueryRowContext(ctx, query,
		event.Name, event.Description, event.EventDate, event.EventEndDate,
		event.Category, event.TicketPrice, event.TotalCapacity,
		event.AvailableTickets, event.Active, event.VenueID, event.UpdatedAt,
		event.ID, event.Version,
	).Scan(&event.Version)
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := s.EventExistsByID(ctx, event.ID)
		if existsErr != nil {
			return domain.Event{}, existsErr
		}
		if !exists {
			return domain.Event{}, domain.EventNotFound(event.ID)
		}
		return domain.Event{}, domain.ErrConcurrentUpdate
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("update event: %w", translate("event", err))
	}
	return event, nil
}

// FindEventByID returns ok=false when no row matches.
func (s *Store) FindEventByID(ctx context.Context, id int64) (domain.Event, bool, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, false, nil
	}
	if err != nil {
		return domain.Event{}, false, fmt.Errorf("select event: %w", err)
	}
	return event, true, nil
}

// DeleteEventByID removes the event row if present.
func (s *Store) DeleteEventByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// EventExistsByID reports whether an event row exists.
func (s *Store) EventExistsByID(ctx context.Context, id int64) (bool, error) {
	found, err := s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check event: %w", err)
	}
	return found, nil
}

// ListEvents returns events matching filter ordered by event date.
func (s *Store) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		conditions = append(conditions, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}
	if filter.Upcoming != nil {
		args = append(args, *filter.Upcoming)
		conditions = append(conditions, fmt.Sprintf("COALESCE(event_end_date, event_date) >= $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+term+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY event_date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		e     domain.Event
		end   sql.NullTime
		price sql.NullFloat64
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.EventDate, &end, &e.Category,
		&price, &e.TotalCapacity, &e.AvailableTickets, &e.Active, &e.VenueID,
		&e.CreatedAt, &e.UpdatedAt, &e.Version,
	)
	if err != nil {
		return domain.Event{}, err
	}
	if end.Valid {
		t := end.Time
		e.EventEndDate = &t
	}
	if price.Valid {
		p := price.Float64
		e.TicketPrice = &p
	}
	return e, nil
}
