package domain

import (
	"strings"
	"time"
)

// User models a registered library member. The password is stored only as a
// one-way hash produced by the injected hasher, never as plaintext. LoggedIn
// is the session flag toggled by login/logout; a stale read of it only
// affects the authorization outcome of the next operation.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	LoggedIn     bool      `json:"logged_in" bson:"logged_in"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// All storage and comparison happens on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
