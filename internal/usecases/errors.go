package usecases

import (
	"errors"
	"fmt"

	storage "github.com/practice-sem-2/messenger-service/internal/storages"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrPersistenceFailure = errors.New("persistence failure")
)

type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindNotFound           ErrorKind = "not_found"
	KindForbidden          ErrorKind = "forbidden"
	KindPersistenceFailure ErrorKind = "persistence_failure"
)

// Kind classifies err into the error taxonomy. Unclassified errors count as
// persistence failures.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindPersistenceFailure
	}
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// storageError wraps an error returned from the storage layer into the
// matching taxonomy root.
func storageError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrPersistenceFailure):
		return err
	case errors.Is(err, storage.ErrGroupNameTaken),
		errors.Is(err, storage.ErrGroupInvalid),
		errors.Is(err, storage.ErrChatAlreadyExists),
		errors.Is(err, storage.ErrMembershipAlreadyExists),
		errors.Is(err, storage.ErrInvitationAlreadyExists),
		errors.Is(err, storage.ErrGroupAlreadyExists),
		errors.Is(err, storage.ErrMessageAlreadyExists):
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	case errors.Is(err, storage.ErrGroupNotFound),
		errors.Is(err, storage.ErrMembershipNotFound),
		errors.Is(err, storage.ErrMessageNotFound),
		errors.Is(err, storage.ErrConnectionNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
}
