// AngelaMos | 2026
// postgres.go

// Package coretest opens a migrated Postgres schema for repository tests.
// Tests are skipped unless DATABASE_URL points at a reachable server.
package coretest

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gym-membership/internal/config"
	"github.com/carterperez-dev/gym-membership/internal/core"
)

const envDatabaseURL = "DATABASE_URL"

// Database returns a connection bound to a fresh schema with every
// migration applied. The schema is dropped when the test ends.
func Database(t testing.TB) *core.Database {
	t.Helper()

	base := os.Getenv(envDatabaseURL)
	if base == "" {
		t.Skipf("%s not set", envDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := core.NewDatabase(ctx, poolConfig(base))
	if err != nil {
		t.Skipf("postgres unreachable: %v", err)
	}
	t.Cleanup(func() { _ = admin.Close() })

	schema := "gym_test_" + strings.ReplaceAll(uuid.NewString()[:13], "-", "")
	if _, err := admin.DB.ExecContext(ctx, `CREATE SCHEMA `+schema); err != nil {
		t.Fatalf("create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		_, _ = admin.DB.ExecContext(context.Background(), `DROP SCHEMA `+schema+` CASCADE`)
	})

	db, err := core.NewDatabase(ctx, poolConfig(withSearchPath(t, base, schema)))
	if err != nil {
		t.Fatalf("connect to %s: %v", schema, err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate %s: %v", schema, err)
	}

	return db
}

func poolConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URL:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}
}

// withSearchPath pins every pooled connection to schema. pgx passes
// unknown URL parameters through as runtime parameters.
func withSearchPath(t testing.TB, dsn, schema string) string {
	t.Helper()

	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return dsn + " search_path=" + schema
	}

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse %s: %v", envDatabaseURL, err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}
