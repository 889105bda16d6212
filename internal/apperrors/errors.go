// Package apperrors defines the error taxonomy shared by the credential
// store, the API pipeline, and the session manager. Callers match these
// values with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input or a malformed backend response.
	// It never accompanies a state transition or a credential mutation.
	ErrValidation = errors.New("validation error")

	// ErrAuth marks an explicit credential rejection by the backend:
	// a bad password, a wrong 2FA code, or an expired/revoked token.
	ErrAuth = errors.New("unauthorized")

	// ErrNetwork marks a transport-level failure (unreachable host, timeout).
	ErrNetwork = errors.New("network unavailable")

	// ErrServer marks a backend-side failure (5xx).
	ErrServer = errors.New("server error")

	// ErrStorage marks a durable-storage write or clear failure.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidState marks an operation called from a session state
	// that does not allow it, e.g. a 2FA verification with no pending login.
	ErrInvalidState = errors.New("invalid session state")
)

// APIError carries the HTTP status and the backend's detail message for a
// failed request. It unwraps to one of the sentinel errors above so callers
// can branch with errors.Is and still show the backend's own wording.
type APIError struct {
	Status int
	Detail string
	kind   error
}

// NewAPIError builds an APIError wrapping the given sentinel kind.
func NewAPIError(kind error, status int, detail string) *APIError {
	return &APIError{Status: status, Detail: detail, kind: kind}
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v (status %d)", e.kind, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.kind, e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
