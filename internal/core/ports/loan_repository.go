package ports

import (
	"context"
	"time"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// LoanRepository is the ledger: the authoritative, append-mostly record of
// all loans. It performs no invariant checks of its own — the one-active-
// loan-per-pair and borrow-limit rules are enforced by the lending workflow
// against the same snapshot it uses for the availability check.
type LoanRepository interface {
	// Create persists a new loan record as-is.
	Create(ctx context.Context, loan *domain.Loan) error
	// FindByID returns domain.ErrLoanNotFound when no loan matches.
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	// FindActiveByUserAndBook returns domain.ErrLoanNotFound when the pair
	// has no open loan.
	FindActiveByUserAndBook(ctx context.Context, userID, bookID string) (*domain.Loan, error)
	FindActiveByUser(ctx context.Context, userID string) ([]*domain.Loan, error)
	FindActiveByBook(ctx context.Context, bookID string) ([]*domain.Loan, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	// Close marks the loan returned at the given time. It succeeds only if
	// the loan is currently active; closing a returned or unknown loan
	// returns false and mutates nothing.
	Close(ctx context.Context, id string, returnedAt time.Time) (bool, error)
	// Reopen undoes a Close: it clears the return date and reactivates the
	// loan. Used only to compensate a failed catalog write mid-return.
	// Returns false when the loan is missing or not in the returned state.
	Reopen(ctx context.Context, id string) (bool, error)
}
