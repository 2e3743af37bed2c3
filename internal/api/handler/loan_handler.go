package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citylibrary/lending-system/internal/api/metrics"
	"github.com/citylibrary/lending-system/internal/core/domain"
	"github.com/citylibrary/lending-system/internal/core/ports"
)

// LoanHandler exposes the lending workflow: borrow, return, and the derived
// borrowed-books view.
type LoanHandler struct {
	lending ports.LendingService
}

func NewLoanHandler(lending ports.LendingService) *LoanHandler {
	return &LoanHandler{lending: lending}
}

// Borrow moves a book to the borrowed state and opens a loan.
//
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Member and book ids"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/loans/borrow [post]
func (h *LoanHandler) Borrow(c echo.Context) error {
	var req borrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.lending.Borrow(c.Request().Context(), req.UserID, req.BookID)
	if err != nil {
		metrics.BorrowRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	metrics.LoansBorrowedTotal.Inc()
	metrics.ActiveLoans.Inc()
	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Message: result.Message,
		Data:    borrowResponse{LoanID: result.LoanID, DueDate: result.DueDate},
	})
}

// Return closes the member's active loan for the book.
//
// @Summary      Return a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      returnRequest  true  "Member and book ids"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/loans/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	var req returnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.lending.Return(c.Request().Context(), req.UserID, req.BookID)
	if err != nil {
		return err
	}

	metrics.LoansReturnedTotal.Inc()
	metrics.ActiveLoans.Dec()
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: result.Message,
		Data:    returnResponse{LoanID: result.LoanID, ReturnedAt: result.ReturnedAt},
	})
}

// BorrowedBooks returns the books the member currently holds, derived from
// the ledger.
//
// @Summary      List a member's borrowed books
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Member id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/members/{id}/books [get]
func (h *LoanHandler) BorrowedBooks(c echo.Context) error {
	userID := c.Param("id")

	books, err := h.lending.BorrowedBooks(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "ok",
		Data:    toBookListResponse(books),
	})
}

// rejectionReason buckets borrow failures for the rejection counter.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrBookNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrBookUnavailable):
		return "already_borrowed"
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "not_logged_in"
	case errors.Is(err, domain.ErrBorrowLimitReached):
		return "limit_reached"
	default:
		return "internal"
	}
}
