package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mlukasik/auth-service/internal/domain"
)

const (
	signupSuccessMessage = "User created successfully!"
	twoFASubject         = "2FA Code"
)

// Service orchestrates the six request-level workflows over the
// injected store backends. Each call is a terminal transition; no
// cross-request state lives outside the stores.
type Service struct {
	users        domain.UserStore
	bannedTokens domain.BannedTokenStore
	twoFACodes   domain.TwoFACodeStore
	emailClient  domain.EmailClient
	hasher       *Hasher
	tokens       *TokenService
}

// NewService wires the orchestrator. All collaborators are required.
func NewService(
	users domain.UserStore,
	bannedTokens domain.BannedTokenStore,
	twoFACodes domain.TwoFACodeStore,
	emailClient domain.EmailClient,
	hasher *Hasher,
	tokens *TokenService,
) *Service {
	return &Service{
		users:        users,
		bannedTokens: bannedTokens,
		twoFACodes:   twoFACodes,
		emailClient:  emailClient,
		hasher:       hasher,
		tokens:       tokens,
	}
}

// Signup creates a credential record. The stored password is the hash,
// never the raw value.
func (s *Service) Signup(ctx context.Context, rawEmail, rawPassword string, requires2FA bool) (string, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Email:        email,
		PasswordHash: hash,
		Requires2FA:  requires2FA,
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("failed to add user: %w", err)
	}

	return signupSuccessMessage, nil
}

// LoginResult is the outcome of a successful credential check: either a
// session cookie, or a pending 2FA challenge identified by
// LoginAttemptID.
type LoginResult struct {
	TwoFARequired  bool
	LoginAttemptID string
	Cookie         *http.Cookie
}

// Login validates credentials and either issues a session token or
// starts a 2FA challenge. Unknown user and wrong password collapse to
// the same error to avoid user enumeration.
func (s *Service) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.ValidateUser(ctx, email, password); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}

	user, err := s.users.GetUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.Requires2FA {
		cookie, err := s.tokens.IssueCookie(email)
		if err != nil {
			return nil, fmt.Errorf("failed to issue session token: %w", err)
		}
		return &LoginResult{Cookie: cookie}, nil
	}

	return s.startTwoFAChallenge(ctx, email)
}

// startTwoFAChallenge stores a fresh (attempt id, code) pair,
// overwriting any prior challenge for the email, and dispatches the
// code. An email dispatch failure is surfaced, never swallowed.
func (s *Service) startTwoFAChallenge(ctx context.Context, email domain.Email) (*LoginResult, error) {
	attemptID := domain.NewLoginAttemptID()
	code, err := domain.NewTwoFACode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate 2FA code: %w", err)
	}

	if err := s.twoFACodes.AddCode(ctx, email, attemptID, code); err != nil {
		return nil, fmt.Errorf("failed to store 2FA challenge: %w", err)
	}

	content := fmt.Sprintf("Your 2FA code is %s", code.Expose())
	if err := s.emailClient.Send(ctx, email, twoFASubject, content); err != nil {
		return nil, fmt.Errorf("failed to send 2FA email: %w", err)
	}

	return &LoginResult{
		TwoFARequired:  true,
		LoginAttemptID: attemptID.Expose(),
	}, nil
}

// Verify2FA checks a challenge response. The stored attempt id and code
// must both match; any parse failure, missing challenge or mismatch
// yields the same error so the caller cannot tell which part was wrong.
// A matching challenge is consumed, so replaying the same values fails.
func (s *Service) Verify2FA(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (*http.Cookie, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, ErrIncorrectCredentials
	}
	attemptID, err := domain.ParseLoginAttemptID(rawAttemptID)
	if err != nil {
		return nil, ErrIncorrectCredentials
	}
	code, err := domain.ParseTwoFACode(rawCode)
	if err != nil {
		return nil, ErrIncorrectCredentials
	}

	storedID, storedCode, err := s.twoFACodes.GetCode(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrLoginAttemptIDNotFound) {
			return nil, ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("failed to load 2FA challenge: %w", err)
	}

	if !storedID.Equal(attemptID) || !storedCode.Equal(code) {
		return nil, ErrIncorrectCredentials
	}

	// single use: consume before issuing the token
	if err := s.twoFACodes.RemoveCode(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to consume 2FA challenge: %w", err)
	}

	cookie, err := s.tokens.IssueCookie(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return cookie, nil
}

// Logout validates the presented token and records it in the
// revocation registry.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := s.tokens.Validate(ctx, token, s.bannedTokens); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return err
		}
		return fmt.Errorf("failed to validate token: %w", err)
	}

	if err := s.bannedTokens.AddToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// VerifyToken checks a caller-supplied token: revocation registry
// first, then signature and expiry.
func (s *Service) VerifyToken(ctx context.Context, token string) error {
	if _, err := s.tokens.Validate(ctx, token, s.bannedTokens); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return err
		}
		return fmt.Errorf("failed to validate token: %w", err)
	}
	return nil
}

// DeleteAccount removes a credential record. Unlike login, a missing
// user is reported distinctly: the caller already supplied the exact
// email to delete, so anti-enumeration does not apply here.
func (s *Service) DeleteAccount(ctx context.Context, rawEmail string) error {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := s.users.DeleteUser(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
