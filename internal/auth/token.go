package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mlukasik/auth-service/internal/domain"
)

const (
	// CookieName is the fixed name of the session cookie.
	CookieName = "jwt"
	// TokenTTL is the session token lifetime. Tokens are never
	// refreshed; a new login issues a new token.
	TokenTTL = 10 * time.Minute
)

// ErrEmptySigningKey is returned when the service is constructed
// without a signing secret.
var ErrEmptySigningKey = errors.New("token signing key must not be empty")

// Claims carried by a session token: subject (email) and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates signed session tokens. The signing
// secret is supplied once at process start.
type TokenService struct {
	key []byte
}

// NewTokenService creates a token service with the process-wide secret.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySigningKey
	}
	return &TokenService{key: []byte(secret)}, nil
}

// Issue creates a signed token for the subject email, expiring TokenTTL
// from now.
func (ts *TokenService) Issue(email domain.Email) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email.Expose(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	})

	signed, err := token.SignedString(ts.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// IssueCookie issues a token and wraps it in the session cookie
// descriptor: fixed name, http-only, SameSite=Lax, path "/".
func (ts *TokenService) IssueCookie(email domain.Email) (*http.Cookie, error) {
	token, err := ts.Issue(email)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie returns a descriptor that removes the session cookie.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// Validate checks a token against the revocation registry first, then
// verifies signature and expiry. The revocation check always precedes
// signature verification so a revoked-but-still-valid token is rejected
// unambiguously. Every verification failure collapses to
// ErrInvalidToken; only registry I/O failures surface separately.
func (ts *TokenService) Validate(ctx context.Context, token string, banned domain.BannedTokenStore) (*Claims, error) {
	revoked, err := banned.ContainsToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to query revocation registry: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
