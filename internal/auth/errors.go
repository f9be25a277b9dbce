package auth

import "errors"

// Request-level error taxonomy. Store errors are wrapped into these at
// the Service boundary; raw causes are kept in the chain for internal
// diagnostics only.
var (
	// ErrInvalidCredentials covers malformed signup/login input. It is
	// deliberately indistinguishable per field to prevent enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIncorrectCredentials covers wrong password, unknown user and
	// any 2FA mismatch. One error regardless of which part failed.
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	// ErrMissingToken means no session cookie accompanied the request.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken covers revoked, expired and malformed tokens.
	ErrInvalidToken = errors.New("invalid token")
)
