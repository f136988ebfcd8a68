// Package repomanager vends the repositories for one storage backend and
// owns its lifecycle (migrations, connection close).
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/logins"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/queries"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Logins() logins.Repository
	Queries() queries.Repository
	Sessions() sessions.Repository
	Close() error
}

// New builds the manager for the configured storage driver.
func New(ctx context.Context, driver, dsn string) (RepositoryManager, error) {
	switch driver {
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StorageSQLite:
		return NewSQLRepositoryManager(ctx, dbx.SQLite, dsn)
	case config.StoragePostgres:
		return NewSQLRepositoryManager(ctx, dbx.Postgres, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
