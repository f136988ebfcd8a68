// Package services contains the server-side business logic shared by the
// HTTP and gRPC shells. This file implements CredentialStore, which owns
// the salted hashes of every user's password and second factor.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/auth"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/users"
)

// Verdict is the outcome of a two-stage credential check.
type Verdict int

const (
	// VerdictOK: password and second factor both match.
	VerdictOK Verdict = iota
	// VerdictFactorFailed: password matches, second factor does not.
	VerdictFactorFailed
	// VerdictCredentialsFailed: unknown user or wrong password, which are
	// reported identically.
	VerdictCredentialsFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictFactorFailed:
		return "factor_failed"
	default:
		return "credentials_failed"
	}
}

type CredentialStore struct {
	users users.Repository
	cost  int
	dummy []byte
	log   logging.Logger
	now   func() time.Time
}

// NewCredentialStore fails when no dummy hash can be made at cost, since
// verifying unknown user names would then return early.
func NewCredentialStore(repo users.Repository, cost int, l logging.Logger) (*CredentialStore, error) {
	dummy, err := auth.DummyHash(cost)
	if err != nil {
		return nil, err
	}
	return &CredentialStore{
		users: repo,
		cost:  cost,
		dummy: dummy,
		log:   l.With("module", "credentials"),
		now:   time.Now,
	}, nil
}

// Register creates a standard account. The reserved administrator name is
// always taken, whether or not it has been seeded yet.
func (s *CredentialStore) Register(ctx context.Context, userName, password, secondFactor string) (*models.User, error) {
	if userName == common.AdminUsername {
		return nil, common.ErrAlreadyExists
	}
	return s.create(ctx, userName, password, secondFactor, models.RoleStandard)
}

// Seed provisions an account with the given role unless the username is
// already present, in which case the stored row is left untouched.
func (s *CredentialStore) Seed(ctx context.Context, userName, password, secondFactor string, role models.Role) error {
	_, err := s.create(ctx, userName, password, secondFactor, role)
	if err != nil && !errors.Is(err, common.ErrAlreadyExists) {
		return err
	}
	return nil
}

func (s *CredentialStore) create(ctx context.Context, userName, password, secondFactor string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(userName) == "" || password == "" || secondFactor == "" {
		return nil, fmt.Errorf("%w: username, password and second factor are required", common.ErrValidation)
	}

	pwHash, err := auth.HashSecret(password, s.cost)
	if err != nil {
		return nil, s.hashError(ctx, err)
	}
	factorHash, err := auth.HashSecret(secondFactor, s.cost)
	if err != nil {
		return nil, s.hashError(ctx, err)
	}

	user, err := s.users.Create(ctx, &models.User{
		UserName:         userName,
		PasswordHash:     pwHash,
		SecondFactorHash: factorHash,
		Role:             role,
		CreatedAt:        s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		s.log.Error(ctx, "error creating user", "username", userName, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *CredentialStore) hashError(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrValidation) {
		return err
	}
	s.log.Error(ctx, "error hashing secret", "error", err)
	return common.ErrorInternal
}

// Verify checks the password first and evaluates the second factor only
// when the password matched. The returned error is non-nil only for store
// failures.
func (s *CredentialStore) Verify(ctx context.Context, userName, password, secondFactor string) (Verdict, *models.User, error) {
	user, err := s.users.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt cost as a real mismatch
			auth.CompareSecret(s.dummy, password)
			return VerdictCredentialsFailed, nil, nil
		}
		s.log.Error(ctx, "error loading user", "username", userName, "error", err)
		return VerdictCredentialsFailed, nil, common.ErrorInternal
	}

	if !auth.CompareSecret(user.PasswordHash, password) {
		return VerdictCredentialsFailed, nil, nil
	}
	if !auth.CompareSecret(user.SecondFactorHash, secondFactor) {
		return VerdictFactorFailed, nil, nil
	}
	return VerdictOK, user, nil
}
