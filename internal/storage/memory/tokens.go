package memory

import (
	"context"
	"sync"

	"github.com/mlukasik/auth-service/internal/domain"
)

// BannedTokenStore is a set-backed revocation registry. Entries are
// never expired; within a process lifetime that is acceptable for the
// demo backend, the redis backend handles TTLs in production.
type BannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

var _ domain.BannedTokenStore = (*BannedTokenStore)(nil)

// NewBannedTokenStore creates an empty in-memory revocation registry.
func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{tokens: make(map[string]struct{})}
}

// AddToken marks a token revoked.
func (s *BannedTokenStore) AddToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = struct{}{}
	return nil
}

// ContainsToken reports whether a token has been revoked.
func (s *BannedTokenStore) ContainsToken(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.tokens[token]
	return exists, nil
}
