// Package domain holds the validated value types, the store contracts
// and the error taxonomy shared by every backend.
//
// Each store contract has interchangeable backends (in-memory,
// relational, redis) constructed once at startup and passed explicitly;
// there is no cross-store transaction, each store maintains its own
// invariant independently.
package domain

import (
	"context"
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	// ErrInvalidCredentials means the stored hash did not match the
	// supplied password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch is returned by PasswordHasher.Verify when the
	// password does not match the hash. Malformed hashes surface as a
	// different error so bad data is never reported as a bad password.
	ErrPasswordMismatch = errors.New("password does not match hash")
	// ErrLoginAttemptIDNotFound means no pending 2FA challenge exists
	// for the email.
	ErrLoginAttemptIDNotFound = errors.New("login attempt id not found")
)

// PasswordHasher computes and verifies memory-hard password hashes.
// Both operations are CPU-bound and implementations must run them off
// the request-handling goroutine.
type PasswordHasher interface {
	Hash(ctx context.Context, password Password) (string, error)
	// Verify returns nil on match, ErrPasswordMismatch on mismatch and
	// any other error for malformed hashes or hashing failures.
	Verify(ctx context.Context, password Password, encodedHash string) error
}

// UserStore is the credential store contract.
type UserStore interface {
	// AddUser inserts a new user, failing with ErrUserAlreadyExists if
	// the email is taken. Insertion is all-or-nothing per email key.
	AddUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, email Email) (User, error)
	// ValidateUser loads the user and verifies the password against the
	// stored hash. Returns ErrUserNotFound or ErrInvalidCredentials.
	ValidateUser(ctx context.Context, email Email, password Password) error
	DeleteUser(ctx context.Context, email Email) error
}

// BannedTokenStore is the session token revocation registry.
type BannedTokenStore interface {
	// AddToken marks a token revoked. The backend keeps the record long
	// enough to outlive the token's own expiry window.
	AddToken(ctx context.Context, token string) error
	ContainsToken(ctx context.Context, token string) (bool, error)
}

// TwoFACodeStore holds at most one pending challenge per email.
type TwoFACodeStore interface {
	// AddCode stores a challenge, overwriting any prior one for the email.
	AddCode(ctx context.Context, email Email, id LoginAttemptID, code TwoFACode) error
	GetCode(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
	RemoveCode(ctx context.Context, email Email) error
}

// EmailClient is the outbound email collaborator. Implementations must
// bound the send with a timeout.
type EmailClient interface {
	Send(ctx context.Context, recipient Email, subject, content string) error
}
