// Package serr holds common error values used across fixgod. Error is a
// wrapping error type compatible with errors.Is: calling errors.Is with any
// of its causes as the target returns true.
package serr

import "errors"

var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
	ErrUnauthorized  = errors.New("a valid bearer token is required")
	ErrDB            = errors.New("an error occurred with the DB")
)

// Error is a typed error with a message and one or more causes. It should
// not be constructed directly; call New.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg && len(e.cause) == len(errTarget.cause) {
			allEqual := true
			for i := range e.cause {
				if e.cause[i] != errTarget.cause[i] {
					allEqual = false
					break
				}
			}
			if allEqual {
				return true
			}
		}
	}
	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// WrapDB wraps err as a cause and adds ErrDB as another cause.
func WrapDB(msg string, err error) Error {
	return Error{msg: msg, cause: []error{err, ErrDB}}
}

// New creates an Error with the given message and causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
