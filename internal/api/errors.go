package api

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the server reports a missing resource.
var ErrNotFound = errors.New("not found")

// ValidationError flags malformed input caught before any network call. It
// names the offending field so the caller can surface it inline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NetworkError wraps a transport failure: no response was received and no
// partial state was committed. The operation is abandoned, never retried
// automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthorizationError is the client-side view of a 401/403 response. The
// credential is presumed missing, expired or insufficient.
type AuthorizationError struct {
	StatusCode int
	Message    string
}

func (e *AuthorizationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authorization failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authorization failed (%d)", e.StatusCode)
}

// DomainConflictError carries a business-rule rejection from the server,
// e.g. a duplicate email on register. The message is surfaced verbatim.
type DomainConflictError struct {
	Message string
}

func (e *DomainConflictError) Error() string {
	return e.Message
}
