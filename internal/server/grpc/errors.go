package grpc

import (
	"errors"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrTimeout):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "username or email already registered")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "could not validate credentials")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "feature not found")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "you don't have permission")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, common.ErrTimeout)
}
