package testhelpers

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/poiseed/internal/database"
)

// PostgresURLEnv names the variable that enables the Postgres tests.
const PostgresURLEnv = "POISEED_TEST_POSTGRES_URL"

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:", database.Options{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewMigratedDB returns a NewTestDB with the pois schema applied.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Migrate(context.Background(), db, database.SQLite); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewPostgresDB returns a migrated Postgres database living in a schema of
// its own, dropped when the test completes. The test is skipped unless
// POISEED_TEST_POSTGRES_URL is set.
func NewPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(PostgresURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := database.Open(ctx, dsn, database.Options{})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = admin.Close() })

	schema := "poiseed_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	db, err := database.Open(ctx, withSearchPath(t, dsn, schema), database.Options{})
	if err != nil {
		t.Fatalf("open postgres schema: %v", err)
	}
	// Registered after the schema cleanup, so it runs first.
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db, database.Postgres); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return db
}

// withSearchPath pins every pooled connection to schema.
func withSearchPath(t *testing.T, dsn, schema string) string {
	t.Helper()

	lower := strings.ToLower(dsn)
	if !strings.HasPrefix(lower, "postgres://") && !strings.HasPrefix(lower, "postgresql://") {
		return dsn + " search_path=" + schema
	}

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse %s: %v", PostgresURLEnv, err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}
