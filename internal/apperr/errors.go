package apperr

import (
	"errors"
	"fmt"
)

// Error taxonomy for the whole backend. Handlers map these onto HTTP
// status codes in exactly one place; storage and auth code only ever
// returns (or wraps) one of these sentinels.
var (
	// ErrAuth covers missing, malformed, or unverifiable credentials,
	// and credentials whose embedded tenant/role no longer match the
	// stored user record.
	ErrAuth = errors.New("authentication failed")

	// ErrTokenExpired is a credential past its validity window.
	ErrTokenExpired = errors.New("token expired")

	// ErrPermissionDenied is an authenticated caller whose role lacks
	// the capability for the requested operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is a row that does not exist under the caller's
	// tenant. Cross-tenant ids report this same error so callers
	// cannot probe for ids in other tenants.
	ErrNotFound = errors.New("not found")

	// ErrValidation is malformed input, including any attempt to set
	// or change an immutable tenant field.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate is a uniqueness violation (tenant contact email,
	// user email, per-tenant natural keys).
	ErrDuplicate = errors.New("duplicate")

	// ErrInternal is an unexpected storage or infrastructure failure.
	// Detail is logged server-side, never surfaced to the caller.
	ErrInternal = errors.New("internal error")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Duplicatef wraps ErrDuplicate with the conflicting field.
func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}

// Internal wraps an unexpected error so the original cause stays
// available for logging while errors.Is(err, ErrInternal) holds.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
