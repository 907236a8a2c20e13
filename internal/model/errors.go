package model

import "fmt"

// ErrorKind classifies engine failures without exposing raw exceptions
// to callers, per spec.md §7.
type ErrorKind string

const (
	ErrValidation           ErrorKind = "validation"
	ErrNotFound             ErrorKind = "not_found"
	ErrPermissionDenied     ErrorKind = "permission_denied"
	ErrGated                ErrorKind = "gated"
	ErrInsufficientFunds    ErrorKind = "insufficient_funds"
	ErrInsufficientUnits    ErrorKind = "insufficient_units"
	ErrDuplicateApplication ErrorKind = "duplicate_application"
	ErrExternal             ErrorKind = "external_failure"
	ErrInternal             ErrorKind = "internal"
)

// EngineError is the error type engine verbs return for validation,
// gating, ownership and not-found failures. Handlers outside the core
// render {error, code, detail} directly from it. Persistence failures are
// returned as ordinary wrapped errors, not as EngineError.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Detail  string
}

func (e *EngineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an EngineError with no detail.
func NewError(kind ErrorKind, message string) *EngineError {
	return &EngineError{Kind: kind, Message: message}
}

// NewErrorf builds an EngineError with a formatted detail.
func NewErrorf(kind ErrorKind, message, detailFmt string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Message: message, Detail: fmt.Sprintf(detailFmt, args...)}
}
