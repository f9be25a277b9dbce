package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukasik/auth-service/internal/domain"
)

func TestTwoFACodeStore(t *testing.T) {
	ctx := context.Background()

	email, err := domain.ParseEmail("user@example.com")
	require.NoError(t, err)

	t.Run("get without challenge", func(t *testing.T) {
		store := NewTwoFACodeStore()
		_, _, err := store.GetCode(ctx, email)
		assert.ErrorIs(t, err, domain.ErrLoginAttemptIDNotFound)
	})

	t.Run("add then get returns the pair", func(t *testing.T) {
		store := NewTwoFACodeStore()
		id := domain.NewLoginAttemptID()
		code, err := domain.NewTwoFACode()
		require.NoError(t, err)

		require.NoError(t, store.AddCode(ctx, email, id, code))

		gotID, gotCode, err := store.GetCode(ctx, email)
		require.NoError(t, err)
		assert.True(t, gotID.Equal(id))
		assert.True(t, gotCode.Equal(code))
	})

	t.Run("a new login overwrites the prior challenge", func(t *testing.T) {
		store := NewTwoFACodeStore()
		firstID := domain.NewLoginAttemptID()
		firstCode, err := domain.NewTwoFACode()
		require.NoError(t, err)
		require.NoError(t, store.AddCode(ctx, email, firstID, firstCode))

		secondID := domain.NewLoginAttemptID()
		secondCode, err := domain.NewTwoFACode()
		require.NoError(t, err)
		require.NoError(t, store.AddCode(ctx, email, secondID, secondCode))

		gotID, _, err := store.GetCode(ctx, email)
		require.NoError(t, err)
		assert.True(t, gotID.Equal(secondID))
		assert.False(t, gotID.Equal(firstID))
	})

	t.Run("remove consumes the challenge", func(t *testing.T) {
		store := NewTwoFACodeStore()
		id := domain.NewLoginAttemptID()
		code, err := domain.NewTwoFACode()
		require.NoError(t, err)
		require.NoError(t, store.AddCode(ctx, email, id, code))

		require.NoError(t, store.RemoveCode(ctx, email))

		_, _, err = store.GetCode(ctx, email)
		assert.ErrorIs(t, err, domain.ErrLoginAttemptIDNotFound)
	})

	t.Run("remove without challenge", func(t *testing.T) {
		store := NewTwoFACodeStore()
		err := store.RemoveCode(ctx, email)
		assert.ErrorIs(t, err, domain.ErrLoginAttemptIDNotFound)
	})
}
