package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukasik/auth-service/internal/domain"
)

// setupClient connects to the redis instance named by
// AUTH_TEST_REDIS_ADDR. The tests are skipped when no instance is
// available.
func setupClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("AUTH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("AUTH_TEST_REDIS_ADDR not set, skipping redis-backed store tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBannedTokenStore_Redis(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)
	store := NewBannedTokenStore(client)

	token := "test.banned." + t.Name()
	t.Cleanup(func() { client.Del(ctx, bannedTokenKeyPrefix+token) })

	banned, err := store.ContainsToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, store.AddToken(ctx, token))

	banned, err = store.ContainsToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, banned)

	// the key carries an expiry
	ttl, err := client.TTL(ctx, bannedTokenKeyPrefix+token).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)
}

func TestTwoFACodeStore_Redis(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)
	store := NewTwoFACodeStore(client)

	email, err := domain.ParseEmail("redis-test@example.com")
	require.NoError(t, err)
	t.Cleanup(func() { client.Del(ctx, twoFACodeKeyPrefix+email.Expose()) })

	_, _, err = store.GetCode(ctx, email)
	assert.ErrorIs(t, err, domain.ErrLoginAttemptIDNotFound)

	id := domain.NewLoginAttemptID()
	code, err := domain.NewTwoFACode()
	require.NoError(t, err)
	require.NoError(t, store.AddCode(ctx, email, id, code))

	gotID, gotCode, err := store.GetCode(ctx, email)
	require.NoError(t, err)
	assert.True(t, gotID.Equal(id))
	assert.True(t, gotCode.Equal(code))

	// overwrite with a fresh challenge
	newID := domain.NewLoginAttemptID()
	newCode, err := domain.NewTwoFACode()
	require.NoError(t, err)
	require.NoError(t, store.AddCode(ctx, email, newID, newCode))

	gotID, _, err = store.GetCode(ctx, email)
	require.NoError(t, err)
	assert.True(t, gotID.Equal(newID))

	require.NoError(t, store.RemoveCode(ctx, email))
	assert.ErrorIs(t, store.RemoveCode(ctx, email), domain.ErrLoginAttemptIDNotFound)
}
