package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"boxoffice/internal/app/events"
	"boxoffice/internal/app/venues"
	"boxoffice/internal/config"
	"boxoffice/internal/logging"
	"boxoffice/internal/store"
	"boxoffice/internal/store/memory"
	"boxoffice/migrations"
)

// backend bundles the storage ports the services need plus the optional
// database handle behind them.
type backend struct {
	events events.Store
	venues venues.Store
	pinger interface {
		Ping(ctx context.Context) error
	}
	db *sql.DB
}

func (b *backend) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		mem := memory.New()
		logger.Warn("using in-memory storage; data is lost on restart")
		return &backend{events: mem, venues: mem}, nil
	}

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		version, _, err := migrations.Version(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.InfoEvent().Uint("schema_version", version).Msg("migrations applied")
	}

	pg := store.New(db)
	return &backend{events: pg, venues: pg, pinger: pg, db: db}, nil
}

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		// Respect caller cancellation.
		if ctx.Err() != nil {
			break
		}

		if time.Now().After(deadline) {
			break
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}
