// Package sessions is the live session table. Sessions are kept in memory
// only; a restart logs everybody out.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	// Get returns common.ErrorNotFound for unknown sessions and for sessions
	// expired at now, evicting the latter.
	Get(ctx context.Context, id string, now time.Time) (*models.Session, error)
	// Delete removes the session and reports whether it was present, so
	// exactly one of several concurrent deletes wins.
	Delete(ctx context.Context, id string) (bool, error)
}
