package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/config"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

//go:embed schema/postgres.sql
var postgresSchema string

//go:embed schema/sqlite.sql
var sqliteSchema string

// Connect opens a handle for cfg.Driver and verifies it with a ping bounded by
// cfg.ConnectTimeout.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	switch cfg.Driver {
	case config.DriverSQLite:
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		err = fmt.Errorf("failed to ping database within %v: %w", cfg.ConnectTimeout, err)
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database handle: %w", closeErr))
		}
		return nil, err
	}

	return db, nil
}

// Schema returns the table definitions for driver.
func Schema(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres, config.DriverPgx:
		return postgresSchema, nil
	case config.DriverSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
}

// InitializeTables creates the players and matches tables if they do not exist.
// It never alters existing tables.
func InitializeTables(ctx context.Context, db *sql.DB, driver string) error {
	ddl, err := Schema(driver)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to initialize tables: %w", err)
	}
	return nil
}
