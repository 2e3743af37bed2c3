package ports

import (
	"context"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	// FindByID returns domain.ErrBookNotFound when no entry matches.
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// FindByTitle performs a case-insensitive exact match on the title.
	FindByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	FindAvailable(ctx context.Context) ([]*domain.Book, error)
	FindAll(ctx context.Context) ([]*domain.Book, error)
	// SetStatus flips the availability flag. Returns false when the book
	// does not exist; no other mutation is performed in that case.
	SetStatus(ctx context.Context, id string, status domain.BookStatus) (bool, error)
}
