package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/domain"
	"github.com/citylibrary/lending-system/internal/core/ports"
)

// CatalogService implements ports.CatalogService on top of a BookRepository.
// The availability flag on books is owned by the lending workflow; this
// service never writes it after creation.
type CatalogService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCatalogService(repo ports.BookRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger, now: time.Now}
}

// AddBook validates and registers a new catalog entry. New books always
// start available. A book with the same title, author, publisher and year
// is a duplicate regardless of its current status.
func (s *CatalogService) AddBook(ctx context.Context, input ports.AddBookInput) (*domain.Book, error) {
	if isBlank(input.Title) || isBlank(input.Author) || isBlank(input.Publisher) {
		s.logger.Warn().
			Str("title", input.Title).
			Str("author", input.Author).
			Str("publisher", input.Publisher).
			Msg("book validation failed, empty required field")
		return nil, fmt.Errorf("%w: book title, author and publisher cannot be empty", domain.ErrValidation)
	}

	currentYear := s.now().UTC().Year()
	if input.Year < domain.MinPublicationYear || input.Year > currentYear {
		s.logger.Warn().Int("year", input.Year).Msg("book validation failed, year out of bounds")
		return nil, fmt.Errorf("%w: year must be between %d and %d", domain.ErrValidation, domain.MinPublicationYear, currentYear)
	}

	candidate := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		Year:      input.Year,
		Publisher: input.Publisher,
	}

	existing, err := s.repo.FindByTitle(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("add book: %w", err)
	}
	for _, b := range existing {
		if b.SameEdition(candidate) {
			s.logger.Warn().
				Str("title", input.Title).
				Str("author", input.Author).
				Int("year", input.Year).
				Msg("duplicate book rejected")
			return nil, domain.ErrDuplicateBook
		}
	}

	candidate.ID = uuid.NewString()
	candidate.Status = domain.BookAvailable

	if err := s.repo.Create(ctx, candidate); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, fmt.Errorf("add book: %w", err)
	}

	s.logger.Info().
		Str("book_id", candidate.ID).
		Str("title", candidate.Title).
		Str("author", candidate.Author).
		Msg("book added")
	return candidate, nil
}

// SearchByTitle returns all books whose title matches exactly, ignoring case.
func (s *CatalogService) SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	books, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search by title: %w", err)
	}
	s.logger.Debug().Str("title", title).Int("matches", len(books)).Msg("title search")
	return books, nil
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.FindAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available: %w", err)
	}
	return books, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all: %w", err)
	}
	return books, nil
}

func (s *CatalogService) Exists(ctx context.Context, bookID string) (bool, error) {
	_, err := s.repo.FindByID(ctx, bookID)
	if errors.Is(err, domain.ErrBookNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// IsAvailable never fails: an unknown book and an infrastructure error both
// report false, with the latter logged.
func (s *CatalogService) IsAvailable(ctx context.Context, bookID string) bool {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, domain.ErrBookNotFound) {
			s.logger.Error().Err(err).Str("book_id", bookID).Msg("availability check failed")
		}
		return false
	}
	return book.IsAvailable()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
