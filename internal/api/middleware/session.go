package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionChecker reports whether a member currently has an open session.
type SessionChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// Session rejects requests whose token is still valid but whose member has
// since logged out. Runs after Auth; a failing checker lets the request
// through — the workflow re-reads the authoritative flag anyway.
func Session(checker SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			active, err := checker.IsActive(c.Request().Context(), userID)
			if err == nil && !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "session closed")
			}
			return next(c)
		}
	}
}
