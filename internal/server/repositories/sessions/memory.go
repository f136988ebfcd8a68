package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Session)}
}

// Create also drops sessions that expired before s was established, so the
// table does not grow without bound.
func (r *MemoryRepository) Create(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byID[s.ID]; taken {
		return common.ErrAlreadyExists
	}
	for id, old := range r.byID {
		if old.Expired(s.EstablishedAt) {
			delete(r.byID, id)
		}
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if s.Expired(now) {
		delete(r.byID, id)
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// Len is the number of stored sessions, expired ones included.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
