package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"boxoffice/internal/domain"
)

const venueColumns = `id, name, address, city, country, capacity, type, facilities,
		active, created_at, updated_at`

// SaveVenue inserts when venue.ID is zero and otherwise updates the row.
func (s *Store) SaveVenue(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	if venue.ID == 0 {
		query := `
			INSERT INTO venues (name, address, city, country, capacity, type,
			                    facilities, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		err := s.db.QueryRowContext(ctx, query,
			venue.Name, venue.Address, venue.City, venue.Country, venue.Capacity,
			venue.Type, venue.Facilities, venue.Active, venue.CreatedAt, venue.UpdatedAt,
		).Scan(&venue.ID)
		if err != nil {
			return domain.Venue{}, fmt.Errorf("insert venue: %w", translate("venue", err))
		}
		return venue, nil
	}

	query := `
		UPDATE venues
		SET name = $1, address = $2, city = $3, country = $4, capacity = $5,
		    type = $6, facilities = $7, active = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(ctx, query,
		venue.Name, venue.Address, venue.City, venue.Country, venue.Capacity,
		venue.Type, venue.Facilities, venue.Active, venue.UpdatedAt, venue.ID,
	)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("update venue: %w", translate("venue", err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Venue{}, fmt.Errorf("update venue: %w", err)
	}
	if affected == 0 {
		return domain.Venue{}, domain.VenueNotFound(venue.ID)
	}
	return venue, nil
}

// FindVenueByID returns ok=false when no row matches.
func (s *Store) FindVenueByID(ctx context.Context, id int64) (domain.Venue, bool, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	venue, err := scanVenue(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Venue{}, false, nil
	}
	if err != nil {
		return domain.Venue{}, false, fmt.Errorf("select venue: %w", err)
	}
	return venue, true, nil
}

// DeleteVenueByID removes the venue row if present.
func (s *Store) DeleteVenueByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

// VenueExistsByID reports whether a venue row exists.
func (s *Store) VenueExistsByID(ctx context.Context, id int64) (bool, error) {
	found, err := s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check venue: %w", err)
	}
	return found, nil
}

// ListVenues returns all venues ordered by name.
func (s *Store) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}

func scanVenue(row rowScanner) (domain.Venue, error) {
	var (
		v        domain.Venue
		capacity sql.NullInt64
	)
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Country, &capacity,
		&v.Type, &v.Facilities, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Venue{}, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		v.Capacity = &c
	}
	return v, nil
}
