package domain

import "errors"

// Expected business failures. These are recovered locally and rendered as
// failed results; anything else that bubbles up is an internal error.
var (
	// ErrInvalidArgument marks a caller bug: a required id or field was
	// absent. Never silently defaulted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation marks well-formed but semantically invalid input.
	ErrValidation = errors.New("validation failed")

	ErrBookNotFound  = errors.New("book not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrLoanNotFound  = errors.New("loan not found")
	ErrDuplicateBook = errors.New("book already exists in the system")
	ErrUserExists    = errors.New("user already exists")

	ErrInvalidCredentials = errors.New("invalid password")
	ErrNotLoggedIn        = errors.New("user is not logged in")
	ErrAlreadyLoggedIn    = errors.New("user is already logged in")

	ErrBookUnavailable    = errors.New("book is already borrowed")
	ErrBorrowLimitReached = errors.New("user has reached the maximum number of borrowed books")
	ErrNoActiveLoan       = errors.New("no active loan for this user and book")
	ErrUserHasActiveLoans = errors.New("user still has borrowed books")
)
