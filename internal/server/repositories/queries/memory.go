package queries

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/server/journal"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

type MemoryRepository struct {
	log *journal.Log[models.QueryRecord]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{log: journal.New(
		func(r *models.QueryRecord, id int64) { r.ID = id },
		func(r models.QueryRecord) string { return r.UserName },
	)}
}

func (r *MemoryRepository) Append(ctx context.Context, rec *models.QueryRecord) (*models.QueryRecord, error) {
	stored := *rec
	stored.Misspelled = slices.Clone(rec.Misspelled)
	stored = r.log.Append(stored)

	rec.ID = stored.ID
	return rec, nil
}

func (r *MemoryRepository) ForUser(ctx context.Context, userName string) ([]models.QueryRecord, error) {
	out := r.log.ForOwner(userName)
	for i := range out {
		out[i].Misspelled = slices.Clone(out[i].Misspelled)
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.QueryRecord, error) {
	rec, ok := r.log.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec.Misspelled = slices.Clone(rec.Misspelled)
	return &rec, nil
}
