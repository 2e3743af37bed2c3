package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore caches open sessions in Redis so the transport layer can
// reject tokens for members who have since logged out. The user record
// remains authoritative; entries here expire with the token.
// Key format: session:<user_id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Mark records an open session for the user, expiring after ttl.
func (s *SessionStore) Mark(ctx context.Context, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return s.client.Set(ctx, s.key(userID), "1", ttl).Err()
}

// Clear drops the session entry on logout or account deletion.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

// IsActive reports whether the user currently has an open session.
func (s *SessionStore) IsActive(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) key(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}
