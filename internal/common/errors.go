// Package common defines the error taxonomy and shared constants used by the
// spellcheckd server, its shells and the CLI client. Callers match the
// sentinel values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Login outcomes other than success.
	ErrBadCredentials   = errors.New("incorrect username or password")
	ErrBadSecondFactor  = errors.New("two-factor failure")
	ErrAlreadyLoggedIn  = errors.New("already logged in")
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAuthorized is an access gate denial. Shells render it exactly like
	// ErrorNotFound so a caller cannot learn whether the target exists.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrCheckEngineFailure reports a spell-check engine timeout, start
	// failure or non-zero exit.
	ErrCheckEngineFailure = errors.New("check engine failure")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
