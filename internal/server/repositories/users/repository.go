// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

// Repository persists users. Usernames are case sensitive and unique.
type Repository interface {
	// Create inserts u and fills in its ID. A taken username yields
	// common.ErrAlreadyExists; the existence check and the insert are atomic.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for unknown usernames.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
