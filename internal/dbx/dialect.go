package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/spellcheckd/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend. Repository queries are written with
// postgres-style $n placeholders and rebound per dialect.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect is the name goose uses for the dialect.
func (d Dialect) GooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites $n placeholders into ?n for sqlite. Queries must not
// contain '$' inside string literals.
func (d Dialect) Rebind(query string) string {
	if d == Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// LockTable returns the statement that serializes writers on table for the
// rest of the current transaction, or "" when the dialect serializes writers
// on its own (sqlite runs on a single connection).
func (d Dialect) LockTable(table string) string {
	if d == Postgres {
		return fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", table)
	}
	return ""
}

// Open connects to dsn and verifies the connection. sqlite is restricted to
// one open connection so writes never hit SQLITE_BUSY, and the directory of
// a file database is created on demand.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if d == SQLite {
		if path := sqliteFile(dsn); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteFile extracts the file path from a sqlite DSN, or "" for in-memory
// databases.
func sqliteFile(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}
