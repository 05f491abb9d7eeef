package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"boxoffice/internal/config"
	"boxoffice/internal/logging"
	"boxoffice/migrations"
)

const usage = "usage: migrate [up|down|version]"

func main() {
	logger := logging.New(logging.Config{Level: "info", Format: "text"})

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	if command != "up" && command != "down" && command != "version" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err, "load config")
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		logger.Fatal(fmt.Errorf("storage driver %q has no schema", cfg.Storage.Driver), "nothing to migrate")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	switch command {
	case "up":
		if err := migrations.Up(db); err != nil {
			logger.Fatal(err, "Failed to run migrations")
		}
		logger.Info("Migrations applied successfully")
	case "down":
		if err := migrations.Down(db); err != nil {
			logger.Fatal(err, "Failed to rollback migrations")
		}
		logger.Info("Migrations rolled back successfully")
	case "version":
		version, dirty, err := migrations.Version(db)
		if err != nil {
			logger.Fatal(err, "Failed to read migration version")
		}
		logger.InfoEvent().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	}
}
