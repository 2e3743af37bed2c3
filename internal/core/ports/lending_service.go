package ports

import (
	"context"
	"time"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// BorrowResult is returned by a successful borrow.
type BorrowResult struct {
	LoanID  string
	DueDate time.Time
	Message string
}

// ReturnResult is returned by a successful return.
type ReturnResult struct {
	LoanID     string
	ReturnedAt time.Time
	Message    string
}

// LoanEventAction labels an audit trail entry.
type LoanEventAction string

const (
	LoanBorrowed LoanEventAction = "borrowed"
	LoanReturned LoanEventAction = "returned"
)

// LoanEvent is the audit record emitted after each committed transition.
type LoanEvent struct {
	LoanID     string
	UserID     string
	BookID     string
	Action     LoanEventAction
	OccurredAt time.Time
}

// LendingService is the orchestrator: the only component that mutates more
// than one store per operation. Operations on the same book are serialized;
// disjoint books proceed in parallel.
type LendingService interface {
	Borrow(ctx context.Context, userID, bookID string) (*BorrowResult, error)
	Return(ctx context.Context, userID, bookID string) (*ReturnResult, error)
	// BorrowedBooks derives the member's current books from the ledger;
	// no redundant list is kept on the user record.
	BorrowedBooks(ctx context.Context, userID string) ([]*domain.Book, error)
}
