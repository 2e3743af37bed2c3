package ports

import (
	"context"
	"time"
)

// PasswordHasher is the injected hashing capability. The directory never
// persists or compares plaintext; implementations range from a plain
// 256-bit digest to a salted KDF.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether the plaintext password matches the stored hash.
	Compare(hash, password string) bool
}

// SessionStore caches the logged-in flag outside the user record so the
// transport layer can reject tokens for users who have since logged out.
// The user record remains the authoritative flag; the store is a cache and
// all writes to it are non-fatal.
type SessionStore interface {
	Mark(ctx context.Context, userID string, ttl time.Duration) error
	Clear(ctx context.Context, userID string) error
	IsActive(ctx context.Context, userID string) (bool, error)
}
