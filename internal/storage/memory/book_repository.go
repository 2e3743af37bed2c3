// Package memory holds in-process reference implementations of the three
// entity stores. They back the test suites and local runs without external
// dependencies; each call is all-or-nothing under a single RWMutex.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// BookRepository is an in-memory ports.BookRepository.
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]*domain.Book)}
}

func (r *BookRepository) Create(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *BookRepository) FindByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *BookRepository) FindByTitle(_ context.Context, title string) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Book
	for _, b := range r.books {
		if strings.EqualFold(b.Title, title) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *BookRepository) FindAvailable(_ context.Context) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Book
	for _, b := range r.books {
		if b.Status == domain.BookAvailable {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *BookRepository) FindAll(_ context.Context) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Book, 0, len(r.books))
	for _, b := range r.books {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookRepository) SetStatus(_ context.Context, id string, status domain.BookStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	return true, nil
}
