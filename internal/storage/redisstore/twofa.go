package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mlukasik/auth-service/internal/domain"
)

const (
	twoFACodeKeyPrefix = "two_fa_code:"
	twoFACodeTTL       = 10 * time.Minute
)

// twoFAPair is the serialized (attempt id, code) value stored under the
// email key.
type twoFAPair struct {
	LoginAttemptID string `json:"login_attempt_id"`
	Code           string `json:"code"`
}

// TwoFACodeStore is the redis-backed challenge store. The challenge is
// a single expiring key per email, so a new login overwrites the prior
// challenge and stale challenges vanish on their own.
type TwoFACodeStore struct {
	client *redis.Client
}

var _ domain.TwoFACodeStore = (*TwoFACodeStore)(nil)

// NewTwoFACodeStore creates a challenge store on the given connection.
func NewTwoFACodeStore(client *redis.Client) *TwoFACodeStore {
	return &TwoFACodeStore{client: client}
}

// AddCode stores the challenge pair with a 10 minute expiry.
func (s *TwoFACodeStore) AddCode(ctx context.Context, email domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) error {
	value, err := json.Marshal(twoFAPair{
		LoginAttemptID: id.Expose(),
		Code:           code.Expose(),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize 2FA challenge: %w", err)
	}

	key := twoFACodeKeyPrefix + email.Expose()
	if err := s.client.Set(ctx, key, value, twoFACodeTTL).Err(); err != nil {
		return fmt.Errorf("failed to set 2FA challenge in redis: %w", err)
	}
	return nil
}

// GetCode returns the pending challenge for the email.
func (s *TwoFACodeStore) GetCode(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	key := twoFACodeKeyPrefix + email.Expose()
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.LoginAttemptID{}, domain.TwoFACode{}, domain.ErrLoginAttemptIDNotFound
		}
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("failed to get 2FA challenge from redis: %w", err)
	}

	var pair twoFAPair
	if err := json.Unmarshal([]byte(value), &pair); err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("failed to deserialize 2FA challenge: %w", err)
	}

	id, err := domain.ParseLoginAttemptID(pair.LoginAttemptID)
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("corrupt 2FA challenge record: %w", err)
	}
	code, err := domain.ParseTwoFACode(pair.Code)
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("corrupt 2FA challenge record: %w", err)
	}
	return id, code, nil
}

// RemoveCode deletes the pending challenge for the email.
func (s *TwoFACodeStore) RemoveCode(ctx context.Context, email domain.Email) error {
	key := twoFACodeKeyPrefix + email.Expose()
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete 2FA challenge from redis: %w", err)
	}
	if n == 0 {
		return domain.ErrLoginAttemptIDNotFound
	}
	return nil
}
