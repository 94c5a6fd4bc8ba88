package registry

import (
	"errors"
)

// ErrorCode is the numeric code reported to callers for a failed operation.
type ErrorCode uint32

const (
	// CodeDuplicateRegistration is returned when the caller is already registered.
	CodeDuplicateRegistration ErrorCode = 1

	// CodeUnauthorized is returned when the caller is not the current admin.
	CodeUnauthorized ErrorCode = 403

	// CodeNotFound is returned when the target identity has no record.
	CodeNotFound ErrorCode = 404
)

var (
	// ErrDuplicateRegistration is returned by RegisterInventor for an identity that already has a record.
	ErrDuplicateRegistration = errors.New("inventor already registered")

	// ErrUnauthorized is returned by admin-only operations called by anyone but the admin.
	ErrUnauthorized = errors.New("caller is not the registry admin")

	// ErrNotFound is returned by VerifyInventor for an identity without a record.
	ErrNotFound = errors.New("inventor not found")

	// ErrUnknownCode is returned when decoding a result carrying a code outside the contract.
	ErrUnknownCode = errors.New("unknown registry error code")
)

// CodeOf maps a (possibly wrapped) registry error to its code.
// The second return value is false for nil and for errors not produced by the registry.
func CodeOf(err error) (ErrorCode, bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, ErrDuplicateRegistration):
		return CodeDuplicateRegistration, true
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized, true
	case errors.Is(err, ErrNotFound):
		return CodeNotFound, true
	default:
		return 0, false
	}
}

// Err returns the sentinel error for the code.
func (c ErrorCode) Err() error {
	switch c {
	case CodeDuplicateRegistration:
		return ErrDuplicateRegistration
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeNotFound:
		return ErrNotFound
	default:
		return ErrUnknownCode
	}
}

// Valid reports whether c is one of the defined codes.
func (c ErrorCode) Valid() bool {
	switch c {
	case CodeDuplicateRegistration, CodeUnauthorized, CodeNotFound:
		return true
	}
	return false
}

// String returns a short symbolic name, used as a metrics label.
func (c ErrorCode) String() string {
	switch c {
	case CodeDuplicateRegistration:
		return "duplicate_registration"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
