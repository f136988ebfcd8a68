// Package repotest opens migrated throwaway databases for repository tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/migrations"
	"github.com/stretchr/testify/require"
)

// OpenSQLite returns a migrated sqlite database in t.TempDir(), closed on
// cleanup.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	return OpenSQLiteAt(t, filepath.Join(t.TempDir(), "spellcheckd.db"))
}

// OpenSQLiteAt is OpenSQLite for a caller-chosen file, so a test can reopen
// the same database.
func OpenSQLiteAt(t testing.TB, path string) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.SQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, dbx.SQLite))
	return db
}

// NewMock returns a sqlmock database using regexp query matching.
func NewMock(t testing.TB) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
