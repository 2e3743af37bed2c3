package ports

import (
	"context"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// AddBookInput carries all data needed to register a new catalog entry.
type AddBookInput struct {
	Title     string
	Author    string
	Year      int
	Publisher string
}

// CatalogService defines use-case operations on the book catalog.
type CatalogService interface {
	AddBook(ctx context.Context, input AddBookInput) (*domain.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	ListAvailable(ctx context.Context) ([]*domain.Book, error)
	ListAll(ctx context.Context) ([]*domain.Book, error)
	// Exists reports whether the book id is known to the catalog.
	Exists(ctx context.Context, bookID string) (bool, error)
	// IsAvailable reports whether the book can be borrowed right now.
	// Unknown books report false; callers that need to distinguish
	// "missing" from "borrowed" must check Exists first.
	IsAvailable(ctx context.Context, bookID string) bool
}
