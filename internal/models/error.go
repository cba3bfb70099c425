package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Validation errors
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidUsername = errors.New("invalid username")

	// Conflict errors
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")

	// Token errors
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrTokenExpired     = errors.New("token expired")

	// Auth errors
	ErrNotVerified        = errors.New("email address not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Delivery errors
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// WeakPasswordError reports the first failed password strength check.
// It carries the specific reason so callers can surface it verbatim.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + e.Reason
}

// IsWeakPassword reports whether err is a password strength failure.
func IsWeakPassword(err error) bool {
	var wpe *WeakPasswordError
	return errors.As(err, &wpe)
}
