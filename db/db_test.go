package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "tournament.db"),
		ConnectTimeout: 2 * time.Second,
	}
}

func TestConnectSQLiteAndInitializeTables(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := db.Connect(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.InitializeTables(ctx, database, cfg.Driver); err != nil {
		t.Fatalf("initialize tables: %v", err)
	}
	// Provisioning twice is harmless.
	if err := db.InitializeTables(ctx, database, cfg.Driver); err != nil {
		t.Fatalf("initialize tables again: %v", err)
	}

	var count int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 0 {
		t.Fatalf("players = %d, want 0", count)
	}
}

func TestConnectSQLiteEnforcesForeignKeys(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := db.Connect(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.InitializeTables(ctx, database, cfg.Driver); err != nil {
		t.Fatalf("initialize tables: %v", err)
	}

	_, err = database.ExecContext(ctx, "INSERT INTO matches (win_player_id, lose_player_id) VALUES (1, 2)")
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestConnectRejectsInvalidConfig(t *testing.T) {
	if _, err := db.Connect(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestConnectReturnsPingFailure(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Path = filepath.Join(t.TempDir(), "no-such-dir", "tournament.db")

	database, err := db.Connect(cfg)
	if err == nil {
		database.Close()
		t.Fatal("expected error for a database file that cannot be created")
	}
	if database != nil {
		t.Fatal("handle must be nil when the ping fails")
	}
	if !strings.Contains(err.Error(), "failed to ping database") {
		t.Fatalf("err = %v, want the ping failure", err)
	}
}

func TestSchemaUnknownDriver(t *testing.T) {
	if _, err := db.Schema("mysql"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	for _, driver := range []string{config.DriverPostgres, config.DriverPgx, config.DriverSQLite} {
		ddl, err := db.Schema(driver)
		if err != nil {
			t.Fatalf("schema %s: %v", driver, err)
		}
		if ddl == "" {
			t.Fatalf("schema %s is empty", driver)
		}
	}
}
