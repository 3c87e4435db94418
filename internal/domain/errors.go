package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// Registration / activation.
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidCode    = errors.New("invalid activation code")

	// Token verification. Each failure kind stays distinct: an expired token
	// must never be reported as a bad signature or vice versa.
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")

	// Login returns the same error for unknown email and wrong password so the
	// response shape cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Session guard.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUserNotFound    = errors.New("user not found")

	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)
