package services

import "errors"

// Kind classifies a registration failure. Every error the registration
// service returns carries exactly one of these.
type Kind int

const (
	KindConflict Kind = iota + 1 // email already registered
	KindNotFound                 // token or user lookup missed
	KindInvalid                  // expired token, already-verified account
	KindInternal                 // store/mailer failure, unexpected condition
)

// internalMessage is what callers see for KindInternal; the real cause is
// logged, not echoed.
const internalMessage = "An unexpected error occurred. Please try again later."

// Error is the one error type the registration service surfaces.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func conflictError(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func notFoundError(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func invalidError(msg string) *Error { return &Error{Kind: KindInvalid, Message: msg} }

func internalError(cause error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for anything
// that is not a service Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
