package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/domain"
	"github.com/citylibrary/lending-system/internal/core/ports"
)

// DefaultBorrowLimit is the maximum number of simultaneously active loans a
// member may hold. The limit is inclusive: the borrow that would make the
// count exceed it is rejected, so with a limit of 5 the sixth borrow fails.
const DefaultBorrowLimit = 5

// AuditSink receives loan events after a committed transition. Recording is
// fire-and-forget; a failing sink never fails the operation.
type AuditSink interface {
	Record(event ports.LoanEvent)
}

// LendingService is the orchestrator of the lending workflow. It is the
// only writer of the catalog status flag and the only component that
// mutates more than one store per operation.
//
// The ledger is the source of truth; the book status is a derived cache of
// "does an active loan reference this book". Ledger checks therefore run
// before any flag read, and both writes of an operation happen under the
// same per-book critical section so no reader of the workflow ever
// observes "loan active, book available" or the reverse.
type LendingService struct {
	books  ports.BookRepository
	users  ports.UserRepository
	loans  ports.LoanRepository
	audit  AuditSink
	limit  int
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	bookLocks map[string]*sync.Mutex
}

func NewLendingService(
	books ports.BookRepository,
	users ports.UserRepository,
	loans ports.LoanRepository,
	audit AuditSink,
	limit int,
	logger zerolog.Logger,
) *LendingService {
	if limit <= 0 {
		limit = DefaultBorrowLimit
	}
	return &LendingService{
		books:     books,
		users:     users,
		loans:     loans,
		audit:     audit,
		limit:     limit,
		logger:    logger,
		now:       time.Now,
		bookLocks: make(map[string]*sync.Mutex),
	}
}

// lockBook returns the mutex serializing all workflow operations on one
// book. Locks are created lazily and kept for the catalog's lifetime;
// operations on disjoint books proceed fully in parallel.
func (s *LendingService) lockBook(bookID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.bookLocks[bookID]
	if !ok {
		l = &sync.Mutex{}
		s.bookLocks[bookID] = l
	}
	return l
}

// Borrow moves a book from available to borrowed and opens a ledger entry,
// as one all-or-nothing transition from the caller's point of view.
func (s *LendingService) Borrow(ctx context.Context, userID, bookID string) (*ports.BorrowResult, error) {
	s.logger.Info().Str("user_id", userID).Str("book_id", bookID).Msg("borrow request")

	if userID == "" || bookID == "" {
		s.logger.Error().Msg("borrow failed, user or book id is empty")
		return nil, fmt.Errorf("%w: user or book id is empty", domain.ErrInvalidArgument)
	}

	lock := s.lockBook(bookID)
	lock.Lock()
	defer lock.Unlock()

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			s.logger.Warn().Str("book_id", bookID).Msg("borrow failed, book not found")
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("borrow: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("user_id", userID).Msg("borrow failed, user not found")
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("borrow: %w", err)
	}

	// Ledger first, flag second: after a crash mid-transaction the two can
	// disagree, and the ledger wins.
	open, err := s.loans.FindActiveByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("borrow: %w", err)
	}
	if len(open) > 0 {
		s.logger.Warn().Str("book_id", bookID).Str("title", book.Title).Msg("borrow failed, book already on loan")
		return nil, domain.ErrBookUnavailable
	}

	if !user.LoggedIn {
		s.logger.Warn().Str("user_id", userID).Msg("borrow failed, user not logged in")
		return nil, domain.ErrNotLoggedIn
	}

	count, err := s.loans.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("borrow: %w", err)
	}
	if count >= s.limit {
		s.logger.Warn().Str("user_id", userID).Int("active_loans", count).Msg("borrow failed, limit reached")
		return nil, fmt.Errorf("%w: (%d)", domain.ErrBorrowLimitReached, s.limit)
	}

	now := s.now().UTC()
	loan := &domain.Loan{
		ID:       uuid.NewString(),
		UserID:   userID,
		BookID:   bookID,
		LoanDate: now,
		DueDate:  now.AddDate(0, domain.LoanPeriodMonths, 0),
		Status:   domain.LoanActive,
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		s.logger.Error().Err(err).Str("book_id", bookID).Msg("failed to open loan")
		return nil, fmt.Errorf("borrow: open loan: %w", err)
	}

	if ok, err := s.books.SetStatus(ctx, bookID, domain.BookBorrowed); err != nil || !ok {
		// Compensate: the loan must not stay open if the flag write failed.
		if _, closeErr := s.loans.Close(ctx, loan.ID, now); closeErr != nil {
			s.logger.Error().Err(closeErr).Str("loan_id", loan.ID).Msg("compensation failed, loan left open")
		}
		s.logger.Error().Err(err).Str("book_id", bookID).Msg("failed to flag book borrowed, loan rolled back")
		if err == nil {
			err = domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("borrow: set book status: %w", err)
	}

	s.record(ports.LoanEvent{
		LoanID:     loan.ID,
		UserID:     userID,
		BookID:     bookID,
		Action:     ports.LoanBorrowed,
		OccurredAt: now,
	})

	s.logger.Info().
		Str("loan_id", loan.ID).
		Str("user_id", userID).
		Str("book_id", bookID).
		Time("due_date", loan.DueDate).
		Msg("borrow successful")

	return &ports.BorrowResult{
		LoanID:  loan.ID,
		DueDate: loan.DueDate,
		Message: fmt.Sprintf("Book borrowed successfully. Loan id: %s", loan.ID),
	}, nil
}

// Return closes the active loan for the (user, book) pair and flags the
// book available again. Only the borrower of record may return a book:
// the active-loan lookup is the authorization check.
func (s *LendingService) Return(ctx context.Context, userID, bookID string) (*ports.ReturnResult, error) {
	s.logger.Info().Str("user_id", userID).Str("book_id", bookID).Msg("return request")

	if userID == "" || bookID == "" {
		s.logger.Error().Msg("return failed, user or book id is empty")
		return nil, fmt.Errorf("%w: user or book id is empty", domain.ErrInvalidArgument)
	}

	lock := s.lockBook(bookID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			s.logger.Warn().Str("book_id", bookID).Msg("return failed, book not found")
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("return: %w", err)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("user_id", userID).Msg("return failed, user not found")
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("return: %w", err)
	}

	loan, err := s.loans.FindActiveByUserAndBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			s.logger.Warn().Str("user_id", userID).Str("book_id", bookID).Msg("return failed, no active loan")
			return nil, domain.ErrNoActiveLoan
		}
		return nil, fmt.Errorf("return: %w", err)
	}

	now := s.now().UTC()
	closed, err := s.loans.Close(ctx, loan.ID, now)
	if err != nil {
		return nil, fmt.Errorf("return: close loan: %w", err)
	}
	if !closed {
		// Lost a race outside the workflow; treat as no active loan.
		return nil, domain.ErrNoActiveLoan
	}

	if ok, err := s.books.SetStatus(ctx, bookID, domain.BookAvailable); err != nil || !ok {
		// Compensate: reopen the loan so ledger and flag still agree.
		if _, reopenErr := s.loans.Reopen(ctx, loan.ID); reopenErr != nil {
			s.logger.Error().Err(reopenErr).Str("loan_id", loan.ID).Msg("compensation failed, loan left closed")
		}
		s.logger.Error().Err(err).Str("book_id", bookID).Msg("failed to flag book available, close rolled back")
		if err == nil {
			err = domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("return: set book status: %w", err)
	}

	s.record(ports.LoanEvent{
		LoanID:     loan.ID,
		UserID:     userID,
		BookID:     bookID,
		Action:     ports.LoanReturned,
		OccurredAt: now,
	})

	s.logger.Info().
		Str("loan_id", loan.ID).
		Str("user_id", userID).
		Str("book_id", bookID).
		Msg("return successful")

	return &ports.ReturnResult{
		LoanID:     loan.ID,
		ReturnedAt: now,
		Message:    "Book returned successfully.",
	}, nil
}

// BorrowedBooks derives the member's current books from the ledger rather
// than keeping a second mutable list on the user record.
func (s *LendingService) BorrowedBooks(ctx context.Context, userID string) ([]*domain.Book, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is empty", domain.ErrInvalidArgument)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("borrowed books: %w", err)
	}

	loans, err := s.loans.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("borrowed books: %w", err)
	}

	books := make([]*domain.Book, 0, len(loans))
	for _, l := range loans {
		book, err := s.books.FindByID(ctx, l.BookID)
		if err != nil {
			// A dangling loan means the never-delete-while-on-loan rule was
			// broken outside the workflow; skip the entry but say so.
			s.logger.Error().Err(err).Str("loan_id", l.ID).Str("book_id", l.BookID).Msg("active loan references missing book")
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

func (s *LendingService) record(event ports.LoanEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
