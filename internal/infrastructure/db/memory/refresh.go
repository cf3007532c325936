package memory

import (
	"context"
	"sync"
	"time"
)

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type RefreshStore struct {
	mu      sync.Mutex
	entries map[string]refreshEntry
	now     func() time.Time
}

func NewRefreshStore() *RefreshStore {
	return &RefreshStore{entries: make(map[string]refreshEntry), now: time.Now}
}

func (s *RefreshStore) Save(_ context.Context, tokenID, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = refreshEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *RefreshStore) Consume(_ context.Context, tokenID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[tokenID]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, tokenID)
	if !s.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.userID, true, nil
}

func (s *RefreshStore) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenID)
	return nil
}
