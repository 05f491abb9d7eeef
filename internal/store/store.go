package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"boxoffice/internal/domain"
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// translate maps constraint violations raised by the schema onto domain errors.
func translate(entity string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23514":
		return &domain.ValidationError{Entity: entity, Field: pgErr.ConstraintName, Reason: "violates a storage constraint"}
	case "23505":
		return &domain.ValidationError{Entity: entity, Field: pgErr.ConstraintName, Reason: "already exists"}
	default:
		return err
	}
}
