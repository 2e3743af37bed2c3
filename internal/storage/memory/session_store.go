package memory

import (
	"context"
	"sync"
	"time"
)

// SessionStore is an in-memory ports.SessionStore. TTLs are honored lazily:
// expired entries report inactive and are dropped on the next read.
type SessionStore struct {
	mu       sync.Mutex
	deadline map[string]time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{deadline: make(map[string]time.Time)}
}

func (s *SessionStore) Mark(_ context.Context, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s.deadline[userID] = time.Now().Add(ttl)
	return nil
}

func (s *SessionStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deadline, userID)
	return nil
}

func (s *SessionStore) IsActive(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deadline[userID]
	if !ok {
		return false, nil
	}
	if time.Now().After(d) {
		delete(s.deadline, userID)
		return false, nil
	}
	return true, nil
}
