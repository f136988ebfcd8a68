package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/migrations"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/logins"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/queries"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/users"
)

// SQLRepositoryManager persists users, logins and queries in postgres or
// sqlite. Sessions stay in memory.
type SQLRepositoryManager struct {
	db       *sql.DB
	dialect  dbx.Dialect
	users    *users.SQLRepository
	logins   *logins.SQLRepository
	queries  *queries.SQLRepository
	sessions *sessions.MemoryRepository
}

// runMigrations is a seam for testing migrations.Up.
var runMigrations = migrations.Up

// NewSQLRepositoryManager connects to dsn and brings the schema up to date.
func NewSQLRepositoryManager(ctx context.Context, dialect dbx.Dialect, dsn string) (*SQLRepositoryManager, error) {
	db, err := dbx.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := newSQLRepositoryManager(db, dialect)
	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	return m, nil
}

func newSQLRepositoryManager(db *sql.DB, dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{
		db:       db,
		dialect:  dialect,
		users:    users.NewSQLRepository(db, dialect),
		logins:   logins.NewSQLRepository(db, dialect),
		queries:  queries.NewSQLRepository(db, dialect),
		sessions: sessions.NewMemoryRepository(),
	}
}

// RunMigrations applies the embedded goose migrations for the dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	return runMigrations(ctx, m.db, m.dialect)
}

func (m *SQLRepositoryManager) Users() users.Repository       { return m.users }
func (m *SQLRepositoryManager) Logins() logins.Repository     { return m.logins }
func (m *SQLRepositoryManager) Queries() queries.Repository   { return m.queries }
func (m *SQLRepositoryManager) Sessions() sessions.Repository { return m.sessions }

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
