package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/access"
	"github.com/dmitrijs2005/spellcheckd/internal/server/metrics"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/queries"
	"github.com/dmitrijs2005/spellcheckd/internal/server/spellcheck"
)

// IdentityResolver maps a session token to the caller's identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// QueryService runs spell-check submissions and serves the query history
// through the access gate.
type QueryService struct {
	resolver IdentityResolver
	queries  queries.Repository
	checker  spellcheck.Checker
	metrics  *metrics.Metrics
	log      logging.Logger
	now      func() time.Time
}

func NewQueryService(r IdentityResolver, repo queries.Repository, c spellcheck.Checker, mt *metrics.Metrics, l logging.Logger) *QueryService {
	return &QueryService{
		resolver: r,
		queries:  repo,
		checker:  c,
		metrics:  mt,
		log:      l.With("module", "queries"),
		now:      time.Now,
	}
}

// Submit checks text and stores the result under the caller's name. text
// must already be sanitized. When the engine fails nothing is stored.
func (s *QueryService) Submit(ctx context.Context, token, text string) (*models.QueryRecord, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	misspelled, err := s.checker.Check(ctx, text)
	s.metrics.ObserveCheck(time.Since(started))
	if err != nil {
		s.metrics.CheckFailed()
		s.log.Warn(ctx, "spell check failed", "username", identity.UserName, "error", err)
		if errors.Is(err, common.ErrCheckEngineFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrCheckEngineFailure, err)
	}
	if misspelled == nil {
		misspelled = []string{}
	}

	rec, err := s.queries.Append(ctx, &models.QueryRecord{
		UserName:   identity.UserName,
		Text:       text,
		Misspelled: misspelled,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.Error(ctx, "error storing query", "username", identity.UserName, "error", err)
		return nil, common.ErrorInternal
	}

	s.metrics.QueryStored()
	s.log.Info(ctx, "query stored", "username", identity.UserName, "query_id", rec.ID, "misspelled", len(misspelled))
	return rec, nil
}

// History returns the queries of target in id order, together with the
// username they were actually resolved for. Only administrators may name a
// target; everyone else gets their own list.
func (s *QueryService) History(ctx context.Context, token, target string) (string, []models.QueryRecord, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return "", nil, err
	}

	owner := access.EffectiveTarget(*identity, target)
	if !access.CanView(*identity, owner) {
		return "", nil, common.ErrNotAuthorized
	}

	list, err := s.queries.ForUser(ctx, owner)
	if err != nil {
		s.log.Error(ctx, "error listing queries", "username", owner, "error", err)
		return "", nil, common.ErrorInternal
	}
	return owner, list, nil
}

// Query returns one record if the caller may see it. For a standard user a
// missing id and somebody else's id both yield ErrNotAuthorized.
func (s *QueryService) Query(ctx context.Context, token string, id int64) (*models.QueryRecord, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	rec, err := s.queries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if identity.IsAdministrator() {
				return nil, common.ErrorNotFound
			}
			return nil, common.ErrNotAuthorized
		}
		s.log.Error(ctx, "error loading query", "query_id", id, "error", err)
		return nil, common.ErrorInternal
	}

	if !access.CanView(*identity, rec.UserName) {
		return nil, common.ErrNotAuthorized
	}
	return rec, nil
}
