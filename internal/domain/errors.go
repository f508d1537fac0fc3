package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Compare with errors.Is; a *Error matches its Kind.
var (
	ErrValidation             = errors.New("validation error")
	ErrAuthRequired           = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAuth                   = errors.New("invalid credentials")
	ErrConflict               = errors.New("conflict")
	ErrNotFound               = errors.New("not found")
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")
	ErrCapacity               = errors.New("capacity exceeded")
	ErrStorage                = errors.New("storage error")
)

// Error is a domain failure with a caller-stable code.
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return NewError(ErrValidation, code, message)
}

func NotFound(code, message string) *Error {
	return NewError(ErrNotFound, code, message)
}

// Storage wraps an unexpected data-store failure. The message is safe to
// show to callers; the wrapped error is for logs only.
func Storage(op string, err error) *Error {
	return &Error{Kind: ErrStorage, Code: "INTERNAL_ERROR", Message: op, Err: err}
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
