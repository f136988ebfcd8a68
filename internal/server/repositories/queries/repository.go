// Package queries is the history of spell-check submissions.
package queries

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

// Repository is an append-only log with its own global id sequence,
// independent of the login audit log.
type Repository interface {
	// Append stores rec and fills in its ID.
	Append(ctx context.Context, rec *models.QueryRecord) (*models.QueryRecord, error)
	// ForUser returns userName's records in id order.
	ForUser(ctx context.Context, userName string) ([]models.QueryRecord, error)
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*models.QueryRecord, error)
}
