package services

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the moderation/voting core. Handlers match these with
// errors.Is and map each to a stable HTTP status; nothing is swallowed here.
var (
	ErrUnauthenticated  = errors.New("no authenticated user")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateComment = errors.New("you have already commented on this post")
	ErrDuplicateReport  = errors.New("you have already reported this content")
	ErrSelfReport       = errors.New("cannot report your own content")
	ErrMissingReason    = errors.New("a reason is required for this report")
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// storeErr wraps a database failure so callers can match ErrStoreUnavailable
// while logs keep the underlying cause.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
