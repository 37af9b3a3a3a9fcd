package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error instance, so callers can react to a
// failure category without matching on error strings.
type Kind int

// Valid values for the Kind enum.
const (
	KindUnknown Kind = iota

	KindValidation     // malformed, missing, or out-of-range input
	KindAuthentication // unknown username or wrong password
	KindPermission     // caller does not own the referenced entity
	KindNotFound       // referenced entity is absent
	KindDuplicate      // uniqueness violation on a name or number
	KindConflict       // operation would violate an active-use invariant
	KindNoCapacity     // no available spot in the requested lot
	KindStorage        // unclassified datastore failure
)

type Error struct {
	Err            error
	Kind           Kind
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// KindOf returns the Kind of the first *Error in the err chain, or
// KindUnknown when no *Error is found there.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func Validation(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindValidation,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

func Authentication(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindAuthentication,
		HTTPStatusCode: http.StatusUnauthorized,
	}
}

func Permission(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindPermission,
		HTTPStatusCode: http.StatusForbidden,
	}
}

func NotFound(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindNotFound,
		HTTPStatusCode: http.StatusNotFound,
	}
}

func Duplicate(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindDuplicate,
		HTTPStatusCode: http.StatusConflict,
	}
}

func Conflict(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindConflict,
		HTTPStatusCode: http.StatusConflict,
	}
}

func NoCapacity(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindNoCapacity,
		HTTPStatusCode: http.StatusConflict,
	}
}

func Storage(err error) *Error {
	return &Error{
		Err:            err,
		Kind:           KindStorage,
		HTTPStatusCode: http.StatusInternalServerError,
	}
}
