package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Runner executes operations one at a time.
type Runner interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// Serialize runs the rest of the chain, error rendering included, on r.
func Serialize(r Runner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := r.Do(c.Request().Context(), func(context.Context) error {
				if err := next(c); err != nil {
					c.Error(err)
				}
				return nil
			})
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "request abandoned")
			}
			return nil
		}
	}
}
