package memory

import (
	"context"
	"sync"

	"github.com/mlukasik/auth-service/internal/domain"
)

type challenge struct {
	attemptID domain.LoginAttemptID
	code      domain.TwoFACode
}

// TwoFACodeStore is a map-backed challenge store holding at most one
// pending challenge per email.
type TwoFACodeStore struct {
	mu    sync.RWMutex
	codes map[domain.Email]challenge
}

var _ domain.TwoFACodeStore = (*TwoFACodeStore)(nil)

// NewTwoFACodeStore creates an empty in-memory challenge store.
func NewTwoFACodeStore() *TwoFACodeStore {
	return &TwoFACodeStore{codes: make(map[domain.Email]challenge)}
}

// AddCode stores a challenge, overwriting any prior one for the email.
func (s *TwoFACodeStore) AddCode(ctx context.Context, email domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[email] = challenge{attemptID: id, code: code}
	return nil
}

// GetCode returns the pending challenge for the email.
func (s *TwoFACodeStore) GetCode(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.codes[email]
	if !exists {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, domain.ErrLoginAttemptIDNotFound
	}
	return stored.attemptID, stored.code, nil
}

// RemoveCode removes the pending challenge for the email.
func (s *TwoFACodeStore) RemoveCode(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.codes[email]; !exists {
		return domain.ErrLoginAttemptIDNotFound
	}
	delete(s.codes, email)
	return nil
}
