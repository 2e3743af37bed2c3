package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/domain"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrBookNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrLoanNotFound, http.StatusNotFound},
		{domain.ErrDuplicateBook, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNotLoggedIn, http.StatusUnauthorized},
		{domain.ErrBookUnavailable, http.StatusConflict},
		{domain.ErrBorrowLimitReached, http.StatusConflict},
		{domain.ErrNoActiveLoan, http.StatusConflict},
		{domain.ErrAlreadyLoggedIn, http.StatusConflict},
		{domain.ErrUserHasActiveLoans, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Errorf("status = %d, want %d", rec.Code, tc.code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, `"success":false`) {
				t.Errorf("body = %s, want failure envelope", body)
			}
			if !strings.Contains(body, tc.err.Error()) {
				t.Errorf("body = %s, want message %q", body, tc.err.Error())
			}
		})
	}
}

// Wrapped domain errors keep their mapping and surface the wrapped detail.
func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("%w (5)", domain.ErrBorrowLimitReached)
	rec := renderError(t, err)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if !strings.Contains(rec.Body.String(), "(5)") {
		t.Errorf("body = %s, want wrapped detail", rec.Body.String())
	}
}

func TestHTTPErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if !strings.Contains(rec.Body.String(), "short and stout") {
		t.Errorf("body = %s, want the HTTPError message", rec.Body.String())
	}
}

// Unknown errors never leak their cause to the client.
func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec := renderError(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := rec.Body.String()
	if strings.Contains(body, "socket closed") {
		t.Errorf("body = %s, leaked internal error detail", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Errorf("body = %s, want generic message", body)
	}
}
