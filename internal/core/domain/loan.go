package domain

import "time"

// LoanStatus represents the lifecycle state of a loan record.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"

	// Reserved states — never produced by the core workflow.
	LoanOverdue   LoanStatus = "overdue"
	LoanLost      LoanStatus = "lost"
	LoanDamaged   LoanStatus = "damaged"
	LoanCancelled LoanStatus = "cancelled"
)

// LoanPeriodMonths is how long a borrower may keep a book: one calendar month.
const LoanPeriodMonths = 1

// Loan is a single entry in the ledger. The ledger is the source of truth
// for who holds which book; the catalog status flag is derived from it.
type Loan struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	UserID     string     `json:"user_id" bson:"user_id"`
	BookID     string     `json:"book_id" bson:"book_id"`
	LoanDate   time.Time  `json:"loan_date" bson:"loan_date"`
	DueDate    time.Time  `json:"due_date" bson:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty"`
	Status     LoanStatus `json:"status" bson:"status"`
}

// IsActive reports whether the loan is still open. ReturnDate is nil iff
// the status is active.
func (l *Loan) IsActive() bool {
	return l.ReturnDate == nil && l.Status == LoanActive
}
