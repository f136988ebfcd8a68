package logins

import (
	"context"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/server/journal"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

type MemoryRepository struct {
	log *journal.Log[models.LoginRecord]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{log: journal.New(
		func(r *models.LoginRecord, id int64) { r.ID = id },
		func(r models.LoginRecord) string { return r.UserName },
	)}
}

func (r *MemoryRepository) RecordLogin(ctx context.Context, userName string, at time.Time) (*models.LoginRecord, error) {
	rec := r.log.Append(models.LoginRecord{UserName: userName, LoginTime: at})
	return &rec, nil
}

func (r *MemoryRepository) RecordLogout(ctx context.Context, userName string, at time.Time) (bool, error) {
	return r.log.AmendLatest(userName,
		models.LoginRecord.Open,
		func(rec *models.LoginRecord) { rec.LogoutTime = &at },
	), nil
}

func (r *MemoryRepository) ForUser(ctx context.Context, userName string) ([]models.LoginRecord, error) {
	return r.log.ForOwner(userName), nil
}
