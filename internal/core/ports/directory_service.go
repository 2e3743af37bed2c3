package ports

import (
	"context"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// DirectoryService defines use-case operations on the member directory:
// registration, session management, and account deletion.
type DirectoryService interface {
	Register(ctx context.Context, email, fullName, password string) (*domain.User, error)
	// Login verifies credentials, flips the session flag, and returns a
	// signed token. A second login on an open session is an explicit
	// failure, not a no-op.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, email string) error
	// Delete requires an open session and zero active loans; otherwise it
	// fails without side effects.
	Delete(ctx context.Context, email string) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
