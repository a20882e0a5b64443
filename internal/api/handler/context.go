package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/api/middleware"
	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// sessionUser returns the user admitted by the Screen middleware. Its absence
// means the route was registered without the guard.
func sessionUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(middleware.UserKey).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return u, nil
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
