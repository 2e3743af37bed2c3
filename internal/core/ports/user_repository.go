package ports

import (
	"context"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// UserRepository defines persistence operations for library members.
// Emails are stored normalized (trimmed, lowercased); uniqueness is enforced
// on the normalized form.
type UserRepository interface {
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail expects a normalized email and returns
	// domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// SetLoggedIn flips the session flag on the stored record.
	SetLoggedIn(ctx context.Context, id string, loggedIn bool) error
	Delete(ctx context.Context, id string) error
}
