package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

// mapError turns a gRPC status back into the error taxonomy. Unauthenticated
// is shared by bad credentials and a missing session, so the message decides.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return common.ErrAlreadyExists
	case codes.Unauthenticated:
		if st.Message() == common.ErrBadCredentials.Error() {
			return common.ErrBadCredentials
		}
		return common.ErrNotAuthenticated
	case codes.PermissionDenied:
		return common.ErrBadSecondFactor
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.FailedPrecondition:
		return common.ErrAlreadyLoggedIn
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, st.Message())
	case codes.Unavailable:
		if st.Message() == "spell check failed" {
			return common.ErrCheckEngineFailure
		}
		return ErrUnavailable
	case codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
