package grpc

import (
	"errors"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps the error taxonomy to gRPC codes. A denial is reported as
// NotFound, the same as real absence.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrBadCredentials):
		return status.Error(codes.Unauthenticated, "incorrect username or password")
	case errors.Is(err, common.ErrBadSecondFactor):
		return status.Error(codes.PermissionDenied, "two-factor failure")
	case errors.Is(err, common.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, "not authenticated")
	case errors.Is(err, common.ErrNotAuthorized), errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrAlreadyLoggedIn):
		return status.Error(codes.FailedPrecondition, "already logged in")
	case errors.Is(err, common.ErrCheckEngineFailure):
		return status.Error(codes.Unavailable, "spell check failed")
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
