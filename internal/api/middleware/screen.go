package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/api/token"
	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

var errSessionReplaced = echo.NewHTTPError(http.StatusUnauthorized, "session replaced, sign in again")

// Screen admits a request to the given role's screen. The token must have
// been issued for that role and the session slot must still hold the token's
// user; on success the session user is stored under UserKey.
//
// Must run after Session and inside Serialize, so the check and the handler
// see the same session.
func Screen(gate ports.Gate, screen domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*token.Claims)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if claims.Role != screen {
				return domain.ErrWrongScreen
			}

			user, err := gate.Enter(c.Request().Context(), screen)
			switch {
			case errors.Is(err, domain.ErrWrongScreen):
				return errSessionReplaced
			case err != nil:
				return err
			case user.ID != claims.Subject:
				return errSessionReplaced
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}
