package database

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour behind a connection.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

var errUnrecognisedDSN = errors.New("unrecognised connection string: want a postgres:// URL, " +
	"key=value Postgres settings, :memory:, file:, sqlite:// or a .db/.sqlite path")

// Keys that mark a libpq key=value connection string.
var pgKeywords = map[string]bool{
	"host":             true,
	"hostaddr":         true,
	"port":             true,
	"dbname":           true,
	"user":             true,
	"password":         true,
	"sslmode":          true,
	"connect_timeout":  true,
	"application_name": true,
}

// DialectFor classifies a connection string:
//
//   - postgres:// and postgresql:// URLs, and key=value strings such as
//     "host=localhost dbname=audioguid", are Postgres;
//   - :memory:, file: URIs, sqlite:// and paths ending in .db, .sqlite or
//     .sqlite3 are SQLite.
//
// Anything else is rejected with a *ConnectionError so a mistyped DSN can
// never turn into a stray database file.
func DialectFor(dsn string) (Dialect, error) {
	trimmed := strings.TrimSpace(dsn)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Postgres, nil
	case lower == ":memory:", strings.HasPrefix(lower, "file:"), strings.HasPrefix(lower, "sqlite://"):
		return SQLite, nil
	}

	// Checked before the file suffixes: "dbname=pois.db" is still Postgres.
	for _, field := range strings.Fields(lower) {
		key, _, ok := strings.Cut(field, "=")
		if ok && pgKeywords[key] {
			return Postgres, nil
		}
	}

	if strings.HasSuffix(lower, ".db") || strings.HasSuffix(lower, ".sqlite") || strings.HasSuffix(lower, ".sqlite3") {
		return SQLite, nil
	}
	return "", &ConnectionError{Err: errUnrecognisedDSN}
}

// sqliteTarget returns the DSN to hand to the SQLite driver and the file it
// refers to. file is empty for in-memory databases.
func sqliteTarget(dsn string) (driverDSN, file string) {
	dsn = strings.TrimSpace(dsn)
	if len(dsn) >= len("sqlite://") && strings.EqualFold(dsn[:len("sqlite://")], "sqlite://") {
		dsn = dsn[len("sqlite://"):]
	}

	if dsn == ":memory:" {
		return dsn, ""
	}
	if len(dsn) >= len("file:") && strings.EqualFold(dsn[:len("file:")], "file:") {
		path, query, _ := strings.Cut(dsn[len("file:"):], "?")
		if path == ":memory:" || strings.Contains(query, "mode=memory") {
			return dsn, ""
		}
		// file:///abs/path
		path = strings.TrimPrefix(path, "//")
		return dsn, path
	}
	return dsn, dsn
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RedactDSN hides the password of a connection string, URL or key=value, so
// it can be logged.
func RedactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	if !strings.Contains(dsn, "password=") {
		return dsn
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if key, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
