// Package logins is the audit log of login and logout events.
package logins

import (
	"context"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

// Repository is an append-only log with one global id sequence shared by
// all users. Ids start at 1 and have no gaps.
type Repository interface {
	// RecordLogin appends an open record for userName.
	RecordLogin(ctx context.Context, userName string, at time.Time) (*models.LoginRecord, error)
	// RecordLogout closes the newest open record of userName. It reports
	// false when there was none; that is not an error.
	RecordLogout(ctx context.Context, userName string, at time.Time) (bool, error)
	// ForUser returns userName's records in id order.
	ForUser(ctx context.Context, userName string) ([]models.LoginRecord, error)
}
