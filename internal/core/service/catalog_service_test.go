package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/citylibrary/lending-system/internal/core/domain"
	"github.com/citylibrary/lending-system/internal/core/ports"
	"github.com/citylibrary/lending-system/internal/storage/memory"
)

func newCatalog() (*CatalogService, *memory.BookRepository) {
	repo := memory.NewBookRepository()
	svc := NewCatalogService(repo, discardLogger)
	return svc, repo
}

func validBookInput() ports.AddBookInput {
	return ports.AddBookInput{
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		Year:      2015,
		Publisher: "Addison-Wesley",
	}
}

func TestCatalogService_AddBook(t *testing.T) {
	svc, _ := newCatalog()

	book, err := svc.AddBook(context.Background(), validBookInput())
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	if book.ID == "" {
		t.Error("AddBook() did not assign an id")
	}
	if book.Status != domain.BookAvailable {
		t.Errorf("AddBook() status = %q, want %q", book.Status, domain.BookAvailable)
	}
}

func TestCatalogService_AddBook_BlankFields(t *testing.T) {
	svc, _ := newCatalog()

	cases := []struct {
		name   string
		mutate func(*ports.AddBookInput)
	}{
		{"empty title", func(in *ports.AddBookInput) { in.Title = "" }},
		{"whitespace title", func(in *ports.AddBookInput) { in.Title = "   " }},
		{"empty author", func(in *ports.AddBookInput) { in.Author = "" }},
		{"empty publisher", func(in *ports.AddBookInput) { in.Publisher = "\t" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validBookInput()
			tc.mutate(&input)
			if _, err := svc.AddBook(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("AddBook() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCatalogService_AddBook_YearBounds(t *testing.T) {
	svc, _ := newCatalog()
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	cases := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"before print era", 1449, true},
		{"earliest printed", 1450, false},
		{"current year", 2026, false},
		{"next year", 2027, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validBookInput()
			input.Title = tc.name // avoid duplicate rejections between cases
			input.Year = tc.year
			_, err := svc.AddBook(context.Background(), input)
			if tc.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("AddBook(year=%d) error = %v, want ErrValidation", tc.year, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("AddBook(year=%d) unexpected error = %v", tc.year, err)
			}
		})
	}
}

func TestCatalogService_AddBook_Duplicate(t *testing.T) {
	svc, repo := newCatalog()
	ctx := context.Background()

	first, err := svc.AddBook(ctx, validBookInput())
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}

	// Same edition with shuffled casing is still a duplicate.
	dup := validBookInput()
	dup.Title = "the go programming language"
	dup.Author = "DONOVAN & KERNIGHAN"
	if _, err := svc.AddBook(ctx, dup); !errors.Is(err, domain.ErrDuplicateBook) {
		t.Errorf("AddBook(case variant) error = %v, want ErrDuplicateBook", err)
	}

	// Duplicate detection must not depend on the existing copy being
	// available.
	if _, err := repo.SetStatus(ctx, first.ID, domain.BookBorrowed); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if _, err := svc.AddBook(ctx, validBookInput()); !errors.Is(err, domain.ErrDuplicateBook) {
		t.Errorf("AddBook(borrowed copy) error = %v, want ErrDuplicateBook", err)
	}

	// A different year is a different edition.
	other := validBookInput()
	other.Year = 2016
	if _, err := svc.AddBook(ctx, other); err != nil {
		t.Errorf("AddBook(new edition) unexpected error = %v", err)
	}
}

func TestCatalogService_SearchByTitle(t *testing.T) {
	svc, _ := newCatalog()
	ctx := context.Background()

	if _, err := svc.AddBook(ctx, validBookInput()); err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}

	matches, err := svc.SearchByTitle(ctx, "THE GO PROGRAMMING LANGUAGE")
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("SearchByTitle() returned %d matches, want 1", len(matches))
	}

	// Partial titles do not match.
	matches, err = svc.SearchByTitle(ctx, "Go Programming")
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("SearchByTitle(partial) returned %d matches, want 0", len(matches))
	}
}

func TestCatalogService_ListAvailable(t *testing.T) {
	svc, repo := newCatalog()
	ctx := context.Background()

	kept, err := svc.AddBook(ctx, validBookInput())
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	out := validBookInput()
	out.Title = "Refactoring"
	borrowed, err := svc.AddBook(ctx, out)
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	if _, err := repo.SetStatus(ctx, borrowed.ID, domain.BookBorrowed); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	available, err := svc.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable() error = %v", err)
	}
	if len(available) != 1 || available[0].ID != kept.ID {
		t.Errorf("ListAvailable() = %v, want only %s", available, kept.ID)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll() returned %d books, want 2", len(all))
	}
}

func TestCatalogService_Exists(t *testing.T) {
	svc, _ := newCatalog()
	ctx := context.Background()

	book, err := svc.AddBook(ctx, validBookInput())
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}

	ok, err := svc.Exists(ctx, book.ID)
	if err != nil || !ok {
		t.Errorf("Exists(%s) = (%v, %v), want (true, nil)", book.ID, ok, err)
	}
	ok, err = svc.Exists(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Exists(missing) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestCatalogService_IsAvailable(t *testing.T) {
	svc, repo := newCatalog()
	ctx := context.Background()

	book, err := svc.AddBook(ctx, validBookInput())
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}

	if !svc.IsAvailable(ctx, book.ID) {
		t.Error("IsAvailable() = false for a fresh book")
	}
	if _, err := repo.SetStatus(ctx, book.ID, domain.BookBorrowed); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if svc.IsAvailable(ctx, book.ID) {
		t.Error("IsAvailable() = true for a borrowed book")
	}
	if svc.IsAvailable(ctx, "missing") {
		t.Error("IsAvailable() = true for an unknown book")
	}
}
