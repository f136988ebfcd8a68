package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/auth"
	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	"github.com/dmitrijs2005/spellcheckd/internal/server/metrics"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/logins"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/sessions"
	"github.com/google/uuid"
)

// LoginResult is what a successful login hands back to the shell.
type LoginResult struct {
	Token     string
	UserName  string
	ExpiresAt time.Time
}

// UserService handles registration and the session lifecycle: login,
// logout and resolving a token to an identity.
//
// A token is an HS256 JWT naming a session id. It is honoured only while
// that session is present and unexpired in the session table.
type UserService struct {
	credentials       *CredentialStore
	sessions          sessions.Repository
	logins            logins.Repository
	jwtSecret         []byte
	sessionValidity   time.Duration
	adminPassword     string
	adminSecondFactor string
	metrics           *metrics.Metrics
	log               logging.Logger
	now               func() time.Time
	newSessionID      func() string
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, mt *metrics.Metrics, l logging.Logger) (*UserService, error) {
	credentials, err := NewCredentialStore(m.Users(), cfg.BcryptCost, l)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &UserService{
		credentials:       credentials,
		sessions:          m.Sessions(),
		logins:            m.Logins(),
		jwtSecret:         []byte(cfg.SecretKey),
		sessionValidity:   cfg.SessionValidityDuration,
		adminPassword:     cfg.AdminPassword,
		adminSecondFactor: cfg.AdminSecondFactor,
		metrics:           mt,
		log:               l.With("module", "users"),
		now:               time.Now,
		newSessionID:      uuid.NewString,
	}, nil
}

// SeedAdmin provisions the administrator account with its configured
// credentials. Safe to call on every start.
func (s *UserService) SeedAdmin(ctx context.Context) error {
	if err := s.credentials.Seed(ctx, common.AdminUsername, s.adminPassword, s.adminSecondFactor, models.RoleAdministrator); err != nil {
		s.log.Error(ctx, "error seeding admin", "error", err)
		return err
	}
	return nil
}

// Register creates a standard account. currentToken is whatever token the
// caller already holds; a live one makes this ErrAlreadyLoggedIn.
func (s *UserService) Register(ctx context.Context, currentToken, userName, password, secondFactor string) (*models.User, error) {
	if s.live(ctx, currentToken) {
		return nil, common.ErrAlreadyLoggedIn
	}

	user, err := s.credentials.Register(ctx, userName, password, secondFactor)
	switch {
	case err == nil:
		s.metrics.Registration(metrics.RegistrationCreated)
		s.log.Info(ctx, "user registered", "username", user.UserName)
		return user, nil
	case errors.Is(err, common.ErrAlreadyExists):
		s.metrics.Registration(metrics.RegistrationExists)
		s.log.Warn(ctx, "registration rejected, username taken", "username", userName)
	case errors.Is(err, common.ErrValidation):
		s.metrics.Registration(metrics.RegistrationInvalid)
	}
	return nil, err
}

// Login runs the two-stage check and, on success, opens a session and
// appends a login record. A caller that already holds a live session gets
// ErrAlreadyLoggedIn and nothing is created.
func (s *UserService) Login(ctx context.Context, currentToken, userName, password, secondFactor string) (*LoginResult, error) {
	if s.live(ctx, currentToken) {
		s.metrics.Login(metrics.LoginAlreadyLoggedIn)
		return nil, common.ErrAlreadyLoggedIn
	}

	verdict, user, err := s.credentials.Verify(ctx, userName, password, secondFactor)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case VerdictCredentialsFailed:
		s.metrics.Login(metrics.LoginBadCredentials)
		s.log.Warn(ctx, "login failed", "username", userName, "reason", verdict.String())
		return nil, common.ErrBadCredentials
	case VerdictFactorFailed:
		s.metrics.Login(metrics.LoginBadSecondFactor)
		s.log.Warn(ctx, "login failed", "username", userName, "reason", verdict.String())
		return nil, common.ErrBadSecondFactor
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:            s.newSessionID(),
		UserName:      user.UserName,
		Role:          user.Role,
		EstablishedAt: now,
		ExpiresAt:     now.Add(s.sessionValidity),
	}

	token, err := auth.GenerateToken(session.ID, session.UserName, s.jwtSecret, session.EstablishedAt, session.ExpiresAt)
	if err != nil {
		s.log.Error(ctx, "error generating token", "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Error(ctx, "error creating session", "error", err)
		return nil, common.ErrorInternal
	}

	rec, err := s.logins.RecordLogin(ctx, session.UserName, now)
	if err != nil {
		_, _ = s.sessions.Delete(ctx, session.ID)
		s.log.Error(ctx, "error recording login", "username", session.UserName, "error", err)
		return nil, common.ErrorInternal
	}

	s.metrics.Login(metrics.LoginOK)
	s.log.Info(ctx, "user logged in", "username", session.UserName, "record_id", rec.ID)

	return &LoginResult{Token: token, UserName: session.UserName, ExpiresAt: session.ExpiresAt}, nil
}

// Logout destroys the session behind token and closes the user's open
// login record. Unknown, expired and already-revoked tokens are a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	session, err := s.session(ctx, token)
	if err != nil {
		return nil
	}

	deleted, err := s.sessions.Delete(ctx, session.ID)
	if err != nil {
		s.log.Error(ctx, "error deleting session", "error", err)
		return common.ErrorInternal
	}
	if !deleted {
		// a concurrent logout got there first
		return nil
	}

	// The session is already gone, so a failed write leaves the record open
	// for good. The next successful logout of this user closes the newest
	// open record instead.
	closed, err := s.logins.RecordLogout(ctx, session.UserName, s.now().UTC())
	if err != nil {
		s.log.Error(ctx, "error recording logout, login record left open", "username", session.UserName, "session", session.ID, "error", err)
		return common.ErrorInternal
	}
	if !closed {
		s.log.Warn(ctx, "logout without open login record", "username", session.UserName)
		return nil
	}

	s.log.Info(ctx, "user logged out", "username", session.UserName)
	return nil
}

// Resolve maps token to the identity of its live session, or
// ErrNotAuthenticated.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	session, err := s.session(ctx, token)
	if err != nil {
		return nil, err
	}
	id := session.Identity()
	return &id, nil
}

func (s *UserService) live(ctx context.Context, token string) bool {
	_, err := s.session(ctx, token)
	return err == nil
}

func (s *UserService) session(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}

	session, err := s.sessions.Get(ctx, claims.SessionID, s.now())
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Error(ctx, "error loading session", "error", err)
		}
		return nil, common.ErrNotAuthenticated
	}
	if session.UserName != claims.UserName {
		return nil, common.ErrNotAuthenticated
	}
	return session, nil
}
