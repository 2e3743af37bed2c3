package memory

import (
	"context"
	"sync"
	"time"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

// LoanRepository is an in-memory ports.LoanRepository.
type LoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{loans: make(map[string]*domain.Loan)}
}

func (r *LoanRepository) Create(_ context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneLoan(loan)
	r.loans[loan.ID] = clone
	return nil
}

func (r *LoanRepository) FindByID(_ context.Context, id string) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return cloneLoan(l), nil
}

func (r *LoanRepository) FindActiveByUserAndBook(_ context.Context, userID, bookID string) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.loans {
		if l.UserID == userID && l.BookID == bookID && l.IsActive() {
			return cloneLoan(l), nil
		}
	}
	return nil, domain.ErrLoanNotFound
}

func (r *LoanRepository) FindActiveByUser(_ context.Context, userID string) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range r.loans {
		if l.UserID == userID && l.IsActive() {
			out = append(out, cloneLoan(l))
		}
	}
	return out, nil
}

func (r *LoanRepository) FindActiveByBook(_ context.Context, bookID string) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range r.loans {
		if l.BookID == bookID && l.IsActive() {
			out = append(out, cloneLoan(l))
		}
	}
	return out, nil
}

func (r *LoanRepository) CountActiveByUser(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, l := range r.loans {
		if l.UserID == userID && l.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *LoanRepository) Close(_ context.Context, id string, returnedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || !l.IsActive() {
		return false, nil
	}
	ts := returnedAt
	l.ReturnDate = &ts
	l.Status = domain.LoanReturned
	return true, nil
}

func (r *LoanRepository) Reopen(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.Status != domain.LoanReturned {
		return false, nil
	}
	l.ReturnDate = nil
	l.Status = domain.LoanActive
	return true, nil
}

func cloneLoan(l *domain.Loan) *domain.Loan {
	clone := *l
	if l.ReturnDate != nil {
		ts := *l.ReturnDate
		clone.ReturnDate = &ts
	}
	return &clone
}
