// Package memory provides the in-memory store backends: a keyed map of
// users, a set of revoked tokens and a map of pending 2FA challenges.
// Each store guards its state with its own reader/writer lock. Nothing
// is persisted; these are the default backends for local runs and
// tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mlukasik/auth-service/internal/domain"
)

// UserStore is a map-backed credential store.
type UserStore struct {
	mu     sync.RWMutex
	users  map[domain.Email]domain.User
	hasher domain.PasswordHasher
}

var _ domain.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user store.
func NewUserStore(hasher domain.PasswordHasher) *UserStore {
	return &UserStore{
		users:  make(map[domain.Email]domain.User),
		hasher: hasher,
	}
}

// AddUser inserts a user, failing if the email key is taken.
func (s *UserStore) AddUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	s.users[user.Email] = user
	return nil
}

// GetUser returns the user for the email.
func (s *UserStore) GetUser(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[email]
	if !exists {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

// ValidateUser verifies the password against the stored hash.
func (s *UserStore) ValidateUser(ctx context.Context, email domain.Email, password domain.Password) error {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return err
	}

	// hash verification runs outside the lock on the hasher's pool
	if err := s.hasher.Verify(ctx, password, user.PasswordHash); err != nil {
		if errors.Is(err, domain.ErrPasswordMismatch) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

// DeleteUser removes the user for the email.
func (s *UserStore) DeleteUser(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; !exists {
		return domain.ErrUserNotFound
	}
	delete(s.users, email)
	return nil
}
