package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ConnectionError means the datastore could not be reached, refused the
// credentials, or was not named by a usable connection string. It is fatal
// for a seed run.
type ConnectionError struct {
	Dialect Dialect
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Dialect == "" {
		return fmt.Sprintf("connect: %v", e.Err)
	}
	return fmt.Sprintf("connect to %s: %v", e.Dialect, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Options tunes Open.
type Options struct {
	// CreateIfMissing lets SQLite create a new database file. Without it a
	// missing file is a connection failure. Ignored for Postgres.
	CreateIfMissing bool
}

// Open opens the database named by dsn and verifies the connection with a
// ping bounded by ctx. Any failure is returned as a *ConnectionError.
//
// SQLite databases are configured for production use: WAL mode, foreign keys
// enabled, busy timeout of 5s.
func Open(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	dialect, err := DialectFor(dsn)
	if err != nil {
		return nil, err
	}

	driverDSN := dsn
	if dialect == SQLite {
		var file string
		driverDSN, file = sqliteTarget(dsn)
		if file != "" && !opts.CreateIfMissing {
			if _, err := os.Stat(file); err != nil {
				return nil, &ConnectionError{Dialect: dialect, Err: fmt.Errorf("database file: %w", err)}
			}
		}
	}

	db, err := sql.Open(dialect.driverName(), driverDSN)
	if err != nil {
		return nil, &ConnectionError{Dialect: dialect, Err: err}
	}

	if dialect == SQLite {
		// Single connection for SQLite to avoid locking issues.
		db.SetMaxOpenConns(1)

		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA foreign_keys=ON",
			"PRAGMA busy_timeout=5000",
		}
		for _, p := range pragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				_ = db.Close()
				return nil, &ConnectionError{Dialect: dialect, Err: fmt.Errorf("exec %q: %w", p, err)}
			}
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Dialect: dialect, Err: fmt.Errorf("ping: %w", err)}
	}

	return db, nil
}

// Migrate runs all pending schema migrations for the dialect, each inside a
// transaction. Migrations are tracked in the schema_migrations table by
// version number.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	set, ok := migrations[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}

	// Ensure schema_migrations table exists (outside transaction so it's always
	// available for version checks).
	if _, err := db.ExecContext(ctx, set.versionTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmts := range set.steps {
		version := i + 1

		var exists int
		if err := db.QueryRowContext(ctx, dialect.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}

		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", version, err)
			}
		}

		if _, err := tx.ExecContext(ctx, dialect.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}

	return nil
}
