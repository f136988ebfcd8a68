package services

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/access"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/logins"
)

// AuditService serves the login audit log. It is administrator-only.
type AuditService struct {
	resolver IdentityResolver
	logins   logins.Repository
	log      logging.Logger
}

func NewAuditService(r IdentityResolver, repo logins.Repository, l logging.Logger) *AuditService {
	return &AuditService{resolver: r, logins: repo, log: l.With("module", "audit")}
}

// LoginHistory returns target's login records in id order. A standard
// identity gets ErrNotAuthorized whatever the target.
func (s *AuditService) LoginHistory(ctx context.Context, token, target string) (string, []models.LoginRecord, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return "", nil, err
	}
	if !identity.IsAdministrator() {
		return "", nil, common.ErrNotAuthorized
	}

	owner := access.EffectiveTarget(*identity, target)
	if !access.CanView(*identity, owner) {
		return "", nil, common.ErrNotAuthorized
	}

	list, err := s.logins.ForUser(ctx, owner)
	if err != nil {
		s.log.Error(ctx, "error listing logins", "username", owner, "error", err)
		return "", nil, common.ErrorInternal
	}
	return owner, list, nil
}
