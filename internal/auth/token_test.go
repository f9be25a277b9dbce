package auth

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukasik/auth-service/internal/domain"
	"github.com/mlukasik/auth-service/internal/storage/memory"
)

const testSigningSecret = "test-signing-secret"

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	email, err := domain.ParseEmail(raw)
	require.NoError(t, err)
	return email
}

func TestNewTokenService(t *testing.T) {
	t.Run("rejects an empty secret", func(t *testing.T) {
		_, err := NewTokenService("")
		assert.ErrorIs(t, err, ErrEmptySigningKey)
	})

	t.Run("accepts a non-empty secret", func(t *testing.T) {
		ts, err := NewTokenService(testSigningSecret)
		require.NoError(t, err)
		assert.NotNil(t, ts)
	})
}

func TestTokenService_IssueCookie(t *testing.T) {
	ts, err := NewTokenService(testSigningSecret)
	require.NoError(t, err)

	cookie, err := ts.IssueCookie(mustEmail(t, "user@example.com"))
	require.NoError(t, err)

	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	// compact JWS: header.payload.signature
	assert.Len(t, strings.Split(cookie.Value, "."), 3)
}

func TestTokenService_Validate(t *testing.T) {
	ctx := context.Background()
	email := mustEmail(t, "user@example.com")
	banned := memory.NewBannedTokenStore()

	ts, err := NewTokenService(testSigningSecret)
	require.NoError(t, err)

	t.Run("valid token yields claims", func(t *testing.T) {
		token, err := ts.Issue(email)
		require.NoError(t, err)

		claims, err := ts.Validate(ctx, token, banned)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Subject)

		// expiry sits roughly TokenTTL from now
		expiresIn := time.Until(claims.ExpiresAt.Time)
		assert.Greater(t, expiresIn, 9*time.Minute)
		assert.LessOrEqual(t, expiresIn, TokenTTL)
	})

	t.Run("revoked token fails before signature checks", func(t *testing.T) {
		token, err := ts.Issue(email)
		require.NoError(t, err)
		require.NoError(t, banned.AddToken(ctx, token))

		_, err = ts.Validate(ctx, token, banned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered token fails", func(t *testing.T) {
		token, err := ts.Issue(email)
		require.NoError(t, err)

		_, err = ts.Validate(ctx, token+"x", memory.NewBannedTokenStore())
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key fails", func(t *testing.T) {
		other, err := NewTokenService("a-different-secret")
		require.NoError(t, err)
		token, err := other.Issue(email)
		require.NoError(t, err)

		_, err = ts.Validate(ctx, token, memory.NewBannedTokenStore())
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token fails", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   email.Expose(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		token, err := expired.SignedString([]byte(testSigningSecret))
		require.NoError(t, err)

		_, err = ts.Validate(ctx, token, memory.NewBannedTokenStore())
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage input fails", func(t *testing.T) {
		_, err := ts.Validate(ctx, "not-a-token", memory.NewBannedTokenStore())
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClearCookie(t *testing.T) {
	cookie := ClearCookie()
	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
