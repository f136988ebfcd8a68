package repomanager

import (
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/logins"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/queries"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all state in process memory. Each manager
// is an isolated store, which is what tests want.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	logins   *logins.MemoryRepository
	queries  *queries.MemoryRepository
	sessions *sessions.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		logins:   logins.NewMemoryRepository(),
		queries:  queries.NewMemoryRepository(),
		sessions: sessions.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository       { return m.users }
func (m *MemoryRepositoryManager) Logins() logins.Repository     { return m.logins }
func (m *MemoryRepositoryManager) Queries() queries.Repository   { return m.queries }
func (m *MemoryRepositoryManager) Sessions() sessions.Repository { return m.sessions }
func (m *MemoryRepositoryManager) Close() error                  { return nil }
